package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidGoal  = errors.New("model: invalid daily goal")
	ErrInvalidLevel = errors.New("model: invalid level")
)

const (
	DefaultDailyGoal = 4
	MaxLevel         = 10
)

// DailyGoalRecord tracks completed work sessions against the day's target.
// One record exists per day the app was used; Count only ever increases
// within its own day.
type DailyGoalRecord struct {
	Goal  int    `json:"goal"`
	Count int    `json:"count"`
	Date  string `json:"date"`
}

func NewDailyGoalRecord(goal int, now time.Time) DailyGoalRecord {
	if goal < 1 {
		goal = DefaultDailyGoal
	}
	return DailyGoalRecord{Goal: goal, Count: 0, Date: now.Format(time.RFC3339)}
}

func (r DailyGoalRecord) Validate() error {
	if r.Goal < 1 {
		return fmt.Errorf("%w: goal must be at least 1", ErrInvalidGoal)
	}
	if r.Count < 0 {
		return fmt.Errorf("%w: count must not be negative", ErrInvalidGoal)
	}
	if strings.TrimSpace(r.Date) == "" {
		return errors.New("model: daily goal record date is required")
	}
	return nil
}

func (r DailyGoalRecord) Met() bool {
	return r.Count >= r.Goal
}

// ProgressionState is the persistent leveling state derived from daily
// productivity scores. Experience stays below Level*100 outside of a
// level-up transition; totals never decrease.
type ProgressionState struct {
	Level           int
	Experience      int
	TotalExperience int
	TotalPoints     int
}

func NewProgressionState() ProgressionState {
	return ProgressionState{Level: 1}
}

func (p ProgressionState) Validate() error {
	if p.Level < 1 || p.Level > MaxLevel {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, p.Level)
	}
	if p.Experience < 0 {
		return errors.New("model: experience must not be negative")
	}
	if p.TotalExperience < 0 {
		return errors.New("model: total experience must not be negative")
	}
	if p.TotalPoints < 0 {
		return errors.New("model: total points must not be negative")
	}
	return nil
}

// ExperienceForNextLevel is the experience threshold that triggers the next
// level transition.
func (p ProgressionState) ExperienceForNextLevel() int {
	return p.Level * 100
}

var levelTitles = [MaxLevel]string{
	"Productivity Novice",
	"Focus Beginner",
	"Productivity Builder",
	"Focus Enthusiast",
	"Productivity Pro",
	"Focus Champion",
	"Productivity Expert",
	"Advanced Focus Warrior",
	"Elite Productivity Guru",
	"Legendary Focus Master",
}

func LevelTitle(level int) string {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return levelTitles[level-1]
}

// Task is the shape of entries under the task list key. The score engine
// reads it to count completions that fall on the current day.
type Task struct {
	ID          int64  `json:"id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt string `json:"completedAt,omitempty"`
}

// CompletedOn reports whether the task was completed on the given day.
func (t Task) CompletedOn(day string) bool {
	if !t.Completed || t.CompletedAt == "" {
		return false
	}
	ts, err := time.Parse(time.RFC3339, t.CompletedAt)
	if err != nil {
		return false
	}
	return DayKey(ts) == day
}

// Distraction is the shape of entries under the distraction log key.
type Distraction struct {
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
	Date   string `json:"date"`
}
