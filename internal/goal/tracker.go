package goal

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/storage"
)

var ErrInvalidGoal = errors.New("goal: goal must be at least 1")

// Hooks carry the tracker's outward events.
type Hooks struct {
	// OnGoalMet fires once when the count first reaches the goal; further
	// increments past the goal stay silent.
	OnGoalMet func(rec model.DailyGoalRecord)
}

// Tracker owns the per-day completed-session counter against a configurable
// goal. Records are scoped by day key; a new day starts a fresh record that
// carries the most recent configured goal forward.
type Tracker struct {
	records *storage.Records
	hooks   Hooks
	now     func() time.Time
	current model.DailyGoalRecord
	day     string
}

func NewTracker(records *storage.Records, hooks Hooks) *Tracker {
	return &Tracker{records: records, hooks: hooks, now: time.Now}
}

func (t *Tracker) SetClock(now func() time.Time) {
	if now != nil {
		t.now = now
	}
}

// Current returns the cached record for the tracked day.
func (t *Tracker) Current() model.DailyGoalRecord { return t.current }

func (t *Tracker) Day() string { return t.day }

// LoadForToday fetches today's record, creating and persisting a fresh one
// when none exists or the stored record belongs to another day.
func (t *Tracker) LoadForToday(ctx context.Context) (model.DailyGoalRecord, error) {
	now := t.now()
	today := model.DayKey(now)

	rec, found, err := t.records.GoalRecord(ctx, today)
	if err != nil {
		return model.DailyGoalRecord{}, err
	}
	if found && stampedDay(rec.Date) == today {
		t.current, t.day = rec, today
		return rec, nil
	}

	prev, err := t.previousGoal(ctx, today)
	if err != nil {
		return model.DailyGoalRecord{}, err
	}
	fresh := model.NewDailyGoalRecord(prev, now)
	if err := t.records.SaveGoalRecord(ctx, today, fresh); err != nil {
		return model.DailyGoalRecord{}, err
	}
	t.current, t.day = fresh, today
	return fresh, nil
}

// SetGoal replaces today's goal and restarts the count from zero so progress
// is never shown against a stale target.
func (t *Tracker) SetGoal(ctx context.Context, newGoal int) (model.DailyGoalRecord, error) {
	if newGoal < 1 {
		return model.DailyGoalRecord{}, fmt.Errorf("%w: got %d", ErrInvalidGoal, newGoal)
	}
	now := t.now()
	today := model.DayKey(now)
	fresh := model.NewDailyGoalRecord(newGoal, now)
	if err := t.records.SaveGoalRecord(ctx, today, fresh); err != nil {
		return model.DailyGoalRecord{}, err
	}
	t.current, t.day = fresh, today
	return fresh, nil
}

// Increment records one completed work session. The persisted record is
// re-read immediately before the bump so a concurrent writer's count is not
// overwritten from stale memory.
func (t *Tracker) Increment(ctx context.Context) (model.DailyGoalRecord, error) {
	now := t.now()
	today := model.DayKey(now)

	rec, found, err := t.records.GoalRecord(ctx, today)
	if err != nil {
		return model.DailyGoalRecord{}, err
	}
	if !found || stampedDay(rec.Date) != today {
		if rec, err = t.LoadForToday(ctx); err != nil {
			return model.DailyGoalRecord{}, err
		}
	}

	wasMet := rec.Met()
	rec.Count++
	rec.Date = now.Format(time.RFC3339)
	if err := t.records.SaveGoalRecord(ctx, today, rec); err != nil {
		return model.DailyGoalRecord{}, err
	}
	t.current, t.day = rec, today

	if !wasMet && rec.Met() && t.hooks.OnGoalMet != nil {
		t.hooks.OnGoalMet(rec)
	}
	return rec, nil
}

// CheckRollover compares the tracked day against the current date and resets
// to a fresh record on mismatch. It returns whether a rollover happened.
func (t *Tracker) CheckRollover(ctx context.Context) (bool, error) {
	today := model.DayKey(t.now())
	if t.day == today {
		return false, nil
	}
	if _, err := t.LoadForToday(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// previousGoal looks up the goal configured on the most recent day before
// today, defaulting when no prior record exists.
func (t *Tracker) previousGoal(ctx context.Context, today string) (int, error) {
	keys, err := t.records.GoalKeys(ctx)
	if err != nil {
		return 0, err
	}
	sort.Strings(keys)
	prev := ""
	for _, day := range keys {
		if day >= today {
			break
		}
		prev = day
	}
	if prev == "" {
		return model.DefaultDailyGoal, nil
	}
	rec, found, err := t.records.GoalRecord(ctx, prev)
	if err != nil {
		return 0, err
	}
	if !found {
		return model.DefaultDailyGoal, nil
	}
	return rec.Goal, nil
}

// stampedDay extracts the day key from a record's RFC3339 stamp; malformed
// stamps read as no day so the record gets replaced.
func stampedDay(stamp string) string {
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(stamp))
	if err != nil {
		return ""
	}
	return model.DayKey(ts)
}
