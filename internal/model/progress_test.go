package model

import (
	"errors"
	"testing"
	"time"
)

func TestNewDailyGoalRecordDefaults(t *testing.T) {
	now := time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)
	rec := NewDailyGoalRecord(0, now)
	if rec.Goal != DefaultDailyGoal {
		t.Fatalf("expected default goal %d, got %d", DefaultDailyGoal, rec.Goal)
	}
	if rec.Count != 0 {
		t.Fatalf("expected fresh count 0, got %d", rec.Count)
	}
	if err := rec.Validate(); err != nil {
		t.Fatalf("expected valid record, got error: %v", err)
	}
}

func TestDailyGoalRecordValidate(t *testing.T) {
	rec := DailyGoalRecord{Goal: 0, Count: 0, Date: "2026-02-09T08:00:00Z"}
	if err := rec.Validate(); err == nil || !errors.Is(err, ErrInvalidGoal) {
		t.Fatalf("expected ErrInvalidGoal, got: %v", err)
	}

	rec = DailyGoalRecord{Goal: 4, Count: -1, Date: "2026-02-09T08:00:00Z"}
	if err := rec.Validate(); err == nil || !errors.Is(err, ErrInvalidGoal) {
		t.Fatalf("expected ErrInvalidGoal for negative count, got: %v", err)
	}
}

func TestDailyGoalRecordMet(t *testing.T) {
	rec := DailyGoalRecord{Goal: 4, Count: 3, Date: "2026-02-09T08:00:00Z"}
	if rec.Met() {
		t.Fatal("3 of 4 must not be met")
	}
	rec.Count = 4
	if !rec.Met() {
		t.Fatal("4 of 4 must be met")
	}
}

func TestProgressionStateValidate(t *testing.T) {
	state := NewProgressionState()
	if err := state.Validate(); err != nil {
		t.Fatalf("expected valid initial state, got error: %v", err)
	}
	if state.Level != 1 {
		t.Fatalf("expected initial level 1, got %d", state.Level)
	}

	state.Level = 11
	if err := state.Validate(); err == nil || !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got: %v", err)
	}
}

func TestExperienceForNextLevel(t *testing.T) {
	state := ProgressionState{Level: 3}
	if got := state.ExperienceForNextLevel(); got != 300 {
		t.Fatalf("expected 300, got %d", got)
	}
}

func TestLevelTitleClamps(t *testing.T) {
	if got := LevelTitle(1); got != "Productivity Novice" {
		t.Fatalf("unexpected level 1 title: %q", got)
	}
	if got := LevelTitle(10); got != "Legendary Focus Master" {
		t.Fatalf("unexpected level 10 title: %q", got)
	}
	if got := LevelTitle(0); got != LevelTitle(1) {
		t.Fatalf("expected underflow clamp to level 1, got %q", got)
	}
	if got := LevelTitle(99); got != LevelTitle(10) {
		t.Fatalf("expected overflow clamp to level 10, got %q", got)
	}
}

func TestTaskCompletedOn(t *testing.T) {
	task := Task{ID: 1, Text: "Ship report", Completed: true, CompletedAt: "2026-02-09T15:30:00Z"}
	if !task.CompletedOn("2026-02-09") {
		t.Fatal("expected completion to count on its own day")
	}
	if task.CompletedOn("2026-02-10") {
		t.Fatal("completion must not count on another day")
	}

	task.Completed = false
	if task.CompletedOn("2026-02-09") {
		t.Fatal("incomplete task must not count")
	}

	task = Task{ID: 2, Text: "Bad stamp", Completed: true, CompletedAt: "not-a-time"}
	if task.CompletedOn("2026-02-09") {
		t.Fatal("unparseable stamp must not count")
	}
}
