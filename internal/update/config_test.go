package update

import "testing"

func TestDefaultRuntimeConfig(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.FocusMinutes != 25 || cfg.ShortBreakMinutes != 5 || cfg.LongBreakMinutes != 15 || cfg.LongBreakInterval != 4 {
		t.Fatalf("durations = %+v", cfg)
	}
	if cfg.IdleThresholdSeconds != 120 {
		t.Fatalf("IdleThresholdSeconds = %d, want 120", cfg.IdleThresholdSeconds)
	}
	if cfg.DesktopNotifications {
		t.Fatal("desktop notifications default on")
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("FOCUSD_DESKTOP_NOTIFICATIONS", "yes")
	t.Setenv("FOCUSD_FOCUS_MINUTES", "50")
	t.Setenv("FOCUSD_SHORT_BREAK_MINUTES", "10")
	t.Setenv("FOCUSD_LONG_BREAK_MINUTES", "30")
	t.Setenv("FOCUSD_LONG_BREAK_INTERVAL", "3")
	t.Setenv("FOCUSD_IDLE_THRESHOLD_SECONDS", "60")
	t.Setenv("FOCUSD_DB_PATH", "/tmp/focusd-test.db")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if !cfg.DesktopNotifications {
		t.Fatal("DesktopNotifications not picked up")
	}
	if cfg.FocusMinutes != 50 || cfg.ShortBreakMinutes != 10 || cfg.LongBreakMinutes != 30 || cfg.LongBreakInterval != 3 {
		t.Fatalf("durations = %+v", cfg)
	}
	if cfg.IdleThresholdSeconds != 60 {
		t.Fatalf("IdleThresholdSeconds = %d, want 60", cfg.IdleThresholdSeconds)
	}
	if cfg.DatabasePath != "/tmp/focusd-test.db" {
		t.Fatalf("DatabasePath = %q", cfg.DatabasePath)
	}
}

func TestRuntimeConfigFromEnvRejectsNonPositive(t *testing.T) {
	t.Setenv("FOCUSD_FOCUS_MINUTES", "0")
	t.Setenv("FOCUSD_SHORT_BREAK_MINUTES", "-5")
	t.Setenv("FOCUSD_IDLE_THRESHOLD_SECONDS", "junk")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.FocusMinutes != 25 || cfg.ShortBreakMinutes != 5 || cfg.IdleThresholdSeconds != 120 {
		t.Fatalf("invalid env values must keep defaults, got %+v", cfg)
	}
}
