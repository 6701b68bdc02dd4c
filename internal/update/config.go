package update

import (
	"os"
	"strconv"
	"strings"

	"github.com/sandeepkv93/focusd/internal/model"
)

type RuntimeConfig struct {
	DesktopNotifications bool
	FocusMinutes         int
	ShortBreakMinutes    int
	LongBreakMinutes     int
	LongBreakInterval    int
	IdleThresholdSeconds int
	SchedulerBuffer      int
	DatabasePath         string
}

func DefaultRuntimeConfig() RuntimeConfig {
	cfg := model.DefaultSessionConfig()
	return RuntimeConfig{
		DesktopNotifications: false,
		FocusMinutes:         cfg.FocusMinutes,
		ShortBreakMinutes:    cfg.ShortBreakMinutes,
		LongBreakMinutes:     cfg.LongBreakMinutes,
		LongBreakInterval:    cfg.LongBreakInterval,
		IdleThresholdSeconds: 120,
		SchedulerBuffer:      64,
	}
}

// SessionConfig lowers the runtime duration knobs into the timer's config
// shape. Persisted settings, when present, take precedence over these.
func (c RuntimeConfig) SessionConfig() model.SessionConfig {
	return model.SessionConfig{
		FocusMinutes:      c.FocusMinutes,
		ShortBreakMinutes: c.ShortBreakMinutes,
		LongBreakMinutes:  c.LongBreakMinutes,
		LongBreakInterval: c.LongBreakInterval,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvBool("FOCUSD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("FOCUSD_FOCUS_MINUTES"); ok && v > 0 {
		cfg.FocusMinutes = v
	}
	if v, ok := getEnvInt("FOCUSD_SHORT_BREAK_MINUTES"); ok && v > 0 {
		cfg.ShortBreakMinutes = v
	}
	if v, ok := getEnvInt("FOCUSD_LONG_BREAK_MINUTES"); ok && v > 0 {
		cfg.LongBreakMinutes = v
	}
	if v, ok := getEnvInt("FOCUSD_LONG_BREAK_INTERVAL"); ok && v > 0 {
		cfg.LongBreakInterval = v
	}
	if v, ok := getEnvInt("FOCUSD_IDLE_THRESHOLD_SECONDS"); ok && v > 0 {
		cfg.IdleThresholdSeconds = v
	}
	if v, ok := getEnvInt("FOCUSD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v := strings.TrimSpace(os.Getenv("FOCUSD_DB_PATH")); v != "" {
		cfg.DatabasePath = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
