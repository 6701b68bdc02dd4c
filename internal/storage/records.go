package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/focusd/internal/model"
)

// Records is the typed layer over the key-value store. Malformed persisted
// values are discarded in favor of freshly initialized defaults; the discard
// hook carries a diagnostic and the error never propagates to callers.
// Missing values are treated the same as a first run.
type Records struct {
	kv        Store
	onDiscard func(key string, err error)
}

func NewRecords(kv Store) *Records {
	return &Records{kv: kv}
}

// SetDiscardHook registers a diagnostic callback invoked whenever a corrupt
// record is thrown away.
func (r *Records) SetDiscardHook(hook func(key string, err error)) {
	r.onDiscard = hook
}

func (r *Records) discard(key string, err error) {
	if r.onDiscard != nil {
		r.onDiscard(key, err)
	}
}

func (r *Records) GoalRecord(ctx context.Context, day string) (model.DailyGoalRecord, bool, error) {
	raw, err := r.kv.Get(ctx, GoalKey(day))
	if errors.Is(err, ErrNotFound) {
		return model.DailyGoalRecord{}, false, nil
	}
	if err != nil {
		return model.DailyGoalRecord{}, false, err
	}
	var rec model.DailyGoalRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		r.discard(GoalKey(day), err)
		return model.DailyGoalRecord{}, false, nil
	}
	if err := rec.Validate(); err != nil {
		r.discard(GoalKey(day), err)
		return model.DailyGoalRecord{}, false, nil
	}
	return rec, true, nil
}

// GoalKeys lists the day keys of every stored goal record.
func (r *Records) GoalKeys(ctx context.Context) ([]string, error) {
	keys, err := r.kv.Keys(ctx, goalKeyPrefix)
	if err != nil {
		return nil, err
	}
	days := make([]string, 0, len(keys))
	for _, key := range keys {
		days = append(days, strings.TrimPrefix(key, goalKeyPrefix))
	}
	return days, nil
}

func (r *Records) SaveGoalRecord(ctx context.Context, day string, rec model.DailyGoalRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode goal record: %w", err)
	}
	return r.kv.Set(ctx, GoalKey(day), string(payload))
}

// Sessions returns the session log, newest first.
func (r *Records) Sessions(ctx context.Context) ([]model.SessionRecord, error) {
	raw, err := r.kv.Get(ctx, KeySessions)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sessions []model.SessionRecord
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		r.discard(KeySessions, err)
		return nil, nil
	}
	return sessions, nil
}

// AppendSession prepends a record to the log so the newest entry stays first.
func (r *Records) AppendSession(ctx context.Context, rec model.SessionRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	sessions, err := r.Sessions(ctx)
	if err != nil {
		return err
	}
	updated := append([]model.SessionRecord{rec}, sessions...)
	payload, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	return r.kv.Set(ctx, KeySessions, string(payload))
}

// CompletedWorkByDay exposes the per-day completed work session counters that
// downstream analytics (calendar heatmap) consume.
func (r *Records) CompletedWorkByDay(ctx context.Context) (map[string]int, error) {
	sessions, err := r.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int)
	for _, s := range sessions {
		if s.Kind == model.RecordKindWork && s.Completed {
			out[s.Date]++
		}
	}
	return out, nil
}

func (r *Records) Progression(ctx context.Context) (model.ProgressionState, error) {
	state := model.NewProgressionState()
	level, err := r.intValue(ctx, KeyLevel, state.Level)
	if err != nil {
		return state, err
	}
	if level < 1 || level > model.MaxLevel {
		r.discard(KeyLevel, fmt.Errorf("level %d out of range", level))
		level = 1
	}
	state.Level = level
	if state.Experience, err = r.nonNegativeValue(ctx, KeyExperience); err != nil {
		return state, err
	}
	if state.TotalExperience, err = r.nonNegativeValue(ctx, KeyTotalExperience); err != nil {
		return state, err
	}
	if state.TotalPoints, err = r.nonNegativeValue(ctx, KeyTotalPoints); err != nil {
		return state, err
	}
	return state, nil
}

func (r *Records) SaveProgression(ctx context.Context, state model.ProgressionState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	pairs := []struct {
		key   string
		value int
	}{
		{KeyLevel, state.Level},
		{KeyExperience, state.Experience},
		{KeyTotalExperience, state.TotalExperience},
		{KeyTotalPoints, state.TotalPoints},
	}
	for _, p := range pairs {
		if err := r.kv.Set(ctx, p.key, strconv.Itoa(p.value)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Records) AwardedPoints(ctx context.Context, day string) (int, error) {
	n, err := r.intValue(ctx, AwardedPointsKey(day), 0)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		r.discard(AwardedPointsKey(day), fmt.Errorf("negative awarded points %d", n))
		return 0, nil
	}
	return n, nil
}

func (r *Records) SetAwardedPoints(ctx context.Context, day string, points int) error {
	if points < 0 {
		return errors.New("storage: awarded points must not be negative")
	}
	return r.kv.Set(ctx, AwardedPointsKey(day), strconv.Itoa(points))
}

func (r *Records) TimerSettings(ctx context.Context) (model.SessionConfig, bool, error) {
	raw, err := r.kv.Get(ctx, KeyTimerSettings)
	if errors.Is(err, ErrNotFound) {
		return model.SessionConfig{}, false, nil
	}
	if err != nil {
		return model.SessionConfig{}, false, err
	}
	var cfg model.SessionConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		r.discard(KeyTimerSettings, err)
		return model.SessionConfig{}, false, nil
	}
	if err := cfg.Validate(); err != nil {
		r.discard(KeyTimerSettings, err)
		return model.SessionConfig{}, false, nil
	}
	return cfg, true, nil
}

func (r *Records) SaveTimerSettings(ctx context.Context, cfg model.SessionConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode timer settings: %w", err)
	}
	return r.kv.Set(ctx, KeyTimerSettings, string(payload))
}

func (r *Records) Tasks(ctx context.Context) ([]model.Task, error) {
	raw, err := r.kv.Get(ctx, KeyTasks)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		r.discard(KeyTasks, err)
		return nil, nil
	}
	return tasks, nil
}

func (r *Records) SaveTasks(ctx context.Context, tasks []model.Task) error {
	payload, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return r.kv.Set(ctx, KeyTasks, string(payload))
}

func (r *Records) Distractions(ctx context.Context) ([]model.Distraction, error) {
	raw, err := r.kv.Get(ctx, KeyDistractions)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []model.Distraction
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		r.discard(KeyDistractions, err)
		return nil, nil
	}
	return entries, nil
}

func (r *Records) AppendDistraction(ctx context.Context, d model.Distraction) error {
	entries, err := r.Distractions(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(append(entries, d))
	if err != nil {
		return fmt.Errorf("encode distractions: %w", err)
	}
	return r.kv.Set(ctx, KeyDistractions, string(payload))
}

func (r *Records) intValue(ctx context.Context, key string, fallback int) (int, error) {
	raw, err := r.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(raw))
	if convErr != nil {
		r.discard(key, convErr)
		return fallback, nil
	}
	return n, nil
}

func (r *Records) nonNegativeValue(ctx context.Context, key string) (int, error) {
	n, err := r.intValue(ctx, key, 0)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		r.discard(key, fmt.Errorf("negative value %d", n))
		return 0, nil
	}
	return n, nil
}
