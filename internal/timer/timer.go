package timer

import (
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
)

// Hooks are the outward events the countdown raises. Nil hooks are skipped.
type Hooks struct {
	OnWorkComplete  func(rec model.SessionRecord)
	OnBreakComplete func(rec model.SessionRecord)
	OnInterrupt     func()
	OnRunningChange func(running bool)
}

// Timer alternates between work and break intervals, counting down in whole
// seconds. It is tick-driven: the owner calls Tick once per second while the
// timer reports Running. Completion fires exactly once per zero-crossing
// because the completing tick atomically transitions the timer to the next
// interval, paused.
type Timer struct {
	cfg           model.SessionConfig
	kind          model.SessionKind
	remaining     int
	running       bool
	completedWork int
	task          string
	tag           string
	hooks         Hooks
	now           func() time.Time
}

func New(cfg model.SessionConfig, hooks Hooks) (*Timer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Timer{
		cfg:       cfg,
		kind:      model.KindWork,
		remaining: cfg.Seconds(model.KindWork),
		hooks:     hooks,
		now:       time.Now,
	}, nil
}

// SetClock overrides the wall clock used to stamp session records.
func (t *Timer) SetClock(now func() time.Time) {
	if now != nil {
		t.now = now
	}
}

// SetLabels sets the task and tag recorded on subsequent session records.
func (t *Timer) SetLabels(task, tag string) {
	t.task = task
	t.tag = tag
}

func (t *Timer) Kind() model.SessionKind { return t.kind }

func (t *Timer) Remaining() int { return t.remaining }

func (t *Timer) Running() bool { return t.running }

func (t *Timer) CompletedWorkSessions() int { return t.completedWork }

func (t *Timer) Config() model.SessionConfig { return t.cfg }

// SessionTotal is the configured length in seconds of the current interval.
func (t *Timer) SessionTotal() int {
	return t.cfg.Seconds(t.kind)
}

func (t *Timer) Start() {
	if t.running {
		return
	}
	t.setRunning(true)
}

func (t *Timer) Pause() {
	if !t.running {
		return
	}
	t.setRunning(false)
}

// Reset returns the timer to the top of the current interval, paused.
// Resetting a running work interval counts as an interruption, not a
// completion.
func (t *Timer) Reset() {
	if t.running && t.kind == model.KindWork && t.hooks.OnInterrupt != nil {
		t.hooks.OnInterrupt()
	}
	if t.running {
		t.setRunning(false)
	}
	t.remaining = t.cfg.Seconds(t.kind)
}

// Tick advances the countdown by one second. A tick that reaches zero
// completes the session in the same call.
func (t *Timer) Tick() {
	if !t.running {
		return
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining == 0 {
		t.complete()
	}
}

// UpdateConfig swaps the session durations and restarts from a fresh work
// interval, paused. An in-progress countdown is discarded rather than scaled.
func (t *Timer) UpdateConfig(cfg model.SessionConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	t.cfg = cfg
	if t.running {
		t.setRunning(false)
	}
	t.kind = model.KindWork
	t.remaining = cfg.Seconds(model.KindWork)
	return nil
}

func (t *Timer) complete() {
	finished := t.kind
	rec := t.newRecord(finished)
	if finished == model.KindWork {
		t.completedWork++
		next := model.KindShortBreak
		if t.completedWork%t.cfg.LongBreakInterval == 0 {
			next = model.KindLongBreak
		}
		t.kind = next
		t.remaining = t.cfg.Seconds(next)
		t.setRunning(false)
		if t.hooks.OnWorkComplete != nil {
			t.hooks.OnWorkComplete(rec)
		}
		return
	}
	t.kind = model.KindWork
	t.remaining = t.cfg.Seconds(model.KindWork)
	t.setRunning(false)
	if t.hooks.OnBreakComplete != nil {
		t.hooks.OnBreakComplete(rec)
	}
}

func (t *Timer) newRecord(finished model.SessionKind) model.SessionRecord {
	now := t.now()
	kind := model.RecordKindBreak
	// Only finished work intervals are marked completed; break records keep
	// the shape of the original history log.
	completed := false
	if finished == model.KindWork {
		kind = model.RecordKindWork
		completed = true
	}
	return model.SessionRecord{
		ID:        now.UnixMilli(),
		Timestamp: now.Format(time.RFC3339),
		Date:      model.DayKey(now),
		Task:      t.task,
		Tag:       t.tag,
		Duration:  t.cfg.Minutes(finished),
		Completed: completed,
		Kind:      kind,
	}
}

func (t *Timer) setRunning(running bool) {
	if t.running == running {
		return
	}
	t.running = running
	if t.hooks.OnRunningChange != nil {
		t.hooks.OnRunningChange(running)
	}
}
