package score

import (
	"context"
	"math"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/storage"
)

// Minutes of focus credited per completed work session.
const focusMinutesPerSession = 25

// Breakdown is the per-signal decomposition of a day's productivity score.
type Breakdown struct {
	Pomodoros          int
	Tasks              int
	Distractions       int
	FocusMinutes       int
	PomodoroScore      int
	TaskScore          int
	DistractionPenalty int
	FocusTimeBonus     float64
}

// Compute derives the bounded 0-100 productivity score from the day's
// counters: p completed work sessions, t tasks completed today, d
// distractions logged today.
func Compute(p, t, d int) (int, Breakdown) {
	b := Breakdown{
		Pomodoros:    p,
		Tasks:        t,
		Distractions: d,
		FocusMinutes: p * focusMinutesPerSession,
	}
	b.PomodoroScore = min(p*20, 100)
	b.TaskScore = min(t*5, 50)
	b.DistractionPenalty = max(d*-10, -50)
	b.FocusTimeBonus = math.Min(float64(b.FocusMinutes)/6, 25)

	raw := float64(b.PomodoroScore+b.TaskScore+b.DistractionPenalty) + b.FocusTimeBonus
	clamped := math.Max(0, math.Min(100, raw))
	return int(math.Round(clamped)), b
}

// Result is one recomputation's outcome.
type Result struct {
	Score     int
	Breakdown Breakdown
	State     model.ProgressionState
	Delta     int
	LeveledUp bool
}

// Hooks carry the engine's outward events.
type Hooks struct {
	OnLevelUp func(newLevel int)
}

// Engine converts daily productivity scores into persistent experience and
// levels. Recomputation is a pure function of the persisted counters and is
// safe to run redundantly: only the portion of today's score not yet awarded
// is converted, tracked per day under the awarded-points key.
type Engine struct {
	records *storage.Records
	hooks   Hooks
	now     func() time.Time
}

func NewEngine(records *storage.Records, hooks Hooks) *Engine {
	return &Engine{records: records, hooks: hooks, now: time.Now}
}

func (e *Engine) SetClock(now func() time.Time) {
	if now != nil {
		e.now = now
	}
}

// Recompute reads today's counters, scores them, awards the unawarded delta
// to experience/points, and advances the level when the threshold is crossed.
func (e *Engine) Recompute(ctx context.Context) (Result, error) {
	today := model.DayKey(e.now())

	p, t, d, err := e.counters(ctx, today)
	if err != nil {
		return Result{}, err
	}
	scoreToday, breakdown := Compute(p, t, d)

	state, err := e.records.Progression(ctx)
	if err != nil {
		return Result{}, err
	}
	// Re-read the awarded marker on every pass; a second window may have
	// converted part of today's score already.
	awarded, err := e.records.AwardedPoints(ctx, today)
	if err != nil {
		return Result{}, err
	}

	delta := scoreToday - awarded
	if delta < 0 {
		delta = 0
	}

	result := Result{Score: scoreToday, Breakdown: breakdown, State: state, Delta: delta}
	if delta > 0 {
		exp := state.Experience + delta
		if state.Level < model.MaxLevel && exp >= state.ExperienceForNextLevel() {
			exp -= state.ExperienceForNextLevel()
			state.Level++
			result.LeveledUp = true
		}
		state.Experience = exp
		state.TotalExperience += delta
		state.TotalPoints += delta
		if err := e.records.SaveProgression(ctx, state); err != nil {
			return Result{}, err
		}
		result.State = state
	}
	if scoreToday != awarded {
		if err := e.records.SetAwardedPoints(ctx, today, scoreToday); err != nil {
			return Result{}, err
		}
	}

	if result.LeveledUp && e.hooks.OnLevelUp != nil {
		e.hooks.OnLevelUp(state.Level)
	}
	return result, nil
}

func (e *Engine) counters(ctx context.Context, today string) (p, t, d int, err error) {
	goalRec, found, err := e.records.GoalRecord(ctx, today)
	if err != nil {
		return 0, 0, 0, err
	}
	if found {
		p = goalRec.Count
	}

	tasks, err := e.records.Tasks(ctx)
	if err != nil {
		return 0, 0, 0, err
	}
	for _, task := range tasks {
		if task.CompletedOn(today) {
			t++
		}
	}

	distractions, err := e.records.Distractions(ctx)
	if err != nil {
		return 0, 0, 0, err
	}
	for _, entry := range distractions {
		if entry.Date == today {
			d++
		}
	}
	return p, t, d, nil
}
