package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidSessionKind = errors.New("model: invalid session kind")
	ErrInvalidRecordKind  = errors.New("model: invalid record kind")
	ErrInvalidConfig      = errors.New("model: invalid session config")
)

// DayKeyLayout is the calendar-date format used to scope per-day records.
const DayKeyLayout = "2006-01-02"

func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

type SessionKind string

const (
	KindWork       SessionKind = "work"
	KindShortBreak SessionKind = "short_break"
	KindLongBreak  SessionKind = "long_break"
)

func (k SessionKind) IsValid() bool {
	switch k {
	case KindWork, KindShortBreak, KindLongBreak:
		return true
	default:
		return false
	}
}

func (k SessionKind) IsBreak() bool {
	return k == KindShortBreak || k == KindLongBreak
}

// RecordKind is the coarse work/break classification stored on session
// records; the short/long distinction only matters to the live countdown.
type RecordKind string

const (
	RecordKindWork  RecordKind = "work"
	RecordKindBreak RecordKind = "break"
)

func (k RecordKind) IsValid() bool {
	return k == RecordKindWork || k == RecordKindBreak
}

type SessionConfig struct {
	FocusMinutes      int `json:"focusTime"`
	ShortBreakMinutes int `json:"shortBreak"`
	LongBreakMinutes  int `json:"longBreak"`
	LongBreakInterval int `json:"longBreakInterval"`
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		FocusMinutes:      25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		LongBreakInterval: 4,
	}
}

func (c SessionConfig) Validate() error {
	if c.FocusMinutes <= 0 {
		return fmt.Errorf("%w: focus minutes must be positive", ErrInvalidConfig)
	}
	if c.ShortBreakMinutes <= 0 {
		return fmt.Errorf("%w: short break minutes must be positive", ErrInvalidConfig)
	}
	if c.LongBreakMinutes <= 0 {
		return fmt.Errorf("%w: long break minutes must be positive", ErrInvalidConfig)
	}
	if c.LongBreakInterval <= 0 {
		return fmt.Errorf("%w: long break interval must be positive", ErrInvalidConfig)
	}
	return nil
}

// Minutes returns the configured length of the given session kind.
func (c SessionConfig) Minutes(kind SessionKind) int {
	switch kind {
	case KindShortBreak:
		return c.ShortBreakMinutes
	case KindLongBreak:
		return c.LongBreakMinutes
	default:
		return c.FocusMinutes
	}
}

func (c SessionConfig) Seconds(kind SessionKind) int {
	return c.Minutes(kind) * 60
}

// SessionRecord is one completed interval in the durable history log.
// Records are append-only, newest first.
type SessionRecord struct {
	ID        int64      `json:"id"`
	Timestamp string     `json:"timestamp"`
	Date      string     `json:"date"`
	Task      string     `json:"task"`
	Tag       string     `json:"tag"`
	Duration  int        `json:"duration"`
	Completed bool       `json:"completed"`
	Kind      RecordKind `json:"kind"`
}

func (r SessionRecord) Validate() error {
	if r.ID <= 0 {
		return errors.New("model: session record id is required")
	}
	if strings.TrimSpace(r.Timestamp) == "" {
		return errors.New("model: session record timestamp is required")
	}
	if strings.TrimSpace(r.Date) == "" {
		return errors.New("model: session record date is required")
	}
	if !r.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRecordKind, r.Kind)
	}
	if r.Duration <= 0 {
		return errors.New("model: session record duration must be positive")
	}
	return nil
}
