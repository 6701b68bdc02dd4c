package goal

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/storage"
)

type fixture struct {
	tracker *Tracker
	records *storage.Records
	now     time.Time
	goalMet []model.DailyGoalRecord
}

func setupTracker(t *testing.T) *fixture {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "goal-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.MigrateUp(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	f := &fixture{
		records: storage.NewRecords(store),
		now:     time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC),
	}
	f.tracker = NewTracker(f.records, Hooks{
		OnGoalMet: func(rec model.DailyGoalRecord) { f.goalMet = append(f.goalMet, rec) },
	})
	f.tracker.SetClock(func() time.Time { return f.now })
	return f
}

func TestLoadForTodayCreatesDefaultRecord(t *testing.T) {
	f := setupTracker(t)
	rec, err := f.tracker.LoadForToday(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.Goal != model.DefaultDailyGoal || rec.Count != 0 {
		t.Fatalf("expected fresh default record, got %#v", rec)
	}

	// The fresh record must be persisted, not just cached.
	stored, found, err := f.records.GoalRecord(t.Context(), "2026-02-09")
	if err != nil || !found {
		t.Fatalf("expected persisted record, found=%v err=%v", found, err)
	}
	if stored.Goal != model.DefaultDailyGoal {
		t.Fatalf("unexpected stored goal: %d", stored.Goal)
	}
}

func TestLoadForTodayCarriesPreviousGoal(t *testing.T) {
	f := setupTracker(t)
	ctx := t.Context()

	yesterday := model.DailyGoalRecord{Goal: 6, Count: 5, Date: "2026-02-08T20:00:00Z"}
	if err := f.records.SaveGoalRecord(ctx, "2026-02-08", yesterday); err != nil {
		t.Fatalf("seed yesterday: %v", err)
	}

	rec, err := f.tracker.LoadForToday(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.Goal != 6 {
		t.Fatalf("expected carried goal 6, got %d", rec.Goal)
	}
	if rec.Count != 0 {
		t.Fatalf("expected fresh count 0, got %d", rec.Count)
	}
}

func TestIncrementFiresGoalMetOnce(t *testing.T) {
	f := setupTracker(t)
	ctx := t.Context()
	if _, err := f.tracker.LoadForToday(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := f.tracker.Increment(ctx); err != nil {
			t.Fatalf("increment %d: %v", i, err)
		}
	}

	if len(f.goalMet) != 1 {
		t.Fatalf("expected one goal-met event, got %d", len(f.goalMet))
	}
	if f.goalMet[0].Count != model.DefaultDailyGoal {
		t.Fatalf("goal-met fired at count %d", f.goalMet[0].Count)
	}
	if f.tracker.Current().Count != 5 {
		t.Fatalf("expected count 5, got %d", f.tracker.Current().Count)
	}
}

func TestIncrementReReadsPersistedCount(t *testing.T) {
	f := setupTracker(t)
	ctx := t.Context()
	if _, err := f.tracker.LoadForToday(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	// A second window bumped the stored record behind our back.
	other := model.DailyGoalRecord{Goal: 4, Count: 2, Date: "2026-02-09T08:30:00Z"}
	if err := f.records.SaveGoalRecord(ctx, "2026-02-09", other); err != nil {
		t.Fatalf("seed concurrent write: %v", err)
	}

	rec, err := f.tracker.Increment(ctx)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if rec.Count != 3 {
		t.Fatalf("expected re-read count 3, got %d", rec.Count)
	}
}

func TestSetGoalResetsCount(t *testing.T) {
	f := setupTracker(t)
	ctx := t.Context()
	if _, err := f.tracker.LoadForToday(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := f.tracker.Increment(ctx); err != nil {
		t.Fatalf("increment: %v", err)
	}

	rec, err := f.tracker.SetGoal(ctx, 8)
	if err != nil {
		t.Fatalf("set goal: %v", err)
	}
	if rec.Goal != 8 || rec.Count != 0 {
		t.Fatalf("expected goal 8 count 0, got %#v", rec)
	}
}

func TestSetGoalRejectsBelowOne(t *testing.T) {
	f := setupTracker(t)
	_, err := f.tracker.SetGoal(t.Context(), 0)
	if err == nil || !errors.Is(err, ErrInvalidGoal) {
		t.Fatalf("expected ErrInvalidGoal, got: %v", err)
	}
}

func TestRolloverResetsCountPreservingGoal(t *testing.T) {
	f := setupTracker(t)
	ctx := t.Context()
	if _, err := f.tracker.LoadForToday(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := f.tracker.SetGoal(ctx, 6); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := f.tracker.Increment(ctx); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	// Midnight passes.
	f.now = time.Date(2026, 2, 10, 0, 1, 0, 0, time.UTC)

	rolled, err := f.tracker.CheckRollover(ctx)
	if err != nil {
		t.Fatalf("rollover: %v", err)
	}
	if !rolled {
		t.Fatal("expected rollover on day change")
	}
	rec := f.tracker.Current()
	if rec.Count != 0 {
		t.Fatalf("expected count reset, got %d", rec.Count)
	}
	if rec.Goal != 6 {
		t.Fatalf("expected goal 6 preserved, got %d", rec.Goal)
	}

	rolled, err = f.tracker.CheckRollover(ctx)
	if err != nil {
		t.Fatalf("second rollover check: %v", err)
	}
	if rolled {
		t.Fatal("same-day check must not roll over again")
	}
}

func TestGoalMetDoesNotRefireAcrossReloads(t *testing.T) {
	f := setupTracker(t)
	ctx := t.Context()
	if _, err := f.tracker.LoadForToday(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	for i := 0; i < 4; i++ {
		if _, err := f.tracker.Increment(ctx); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}
	if _, err := f.tracker.LoadForToday(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, err := f.tracker.Increment(ctx); err != nil {
		t.Fatalf("increment past goal: %v", err)
	}
	if len(f.goalMet) != 1 {
		t.Fatalf("expected one goal-met event, got %d", len(f.goalMet))
	}
}
