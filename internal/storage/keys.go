package storage

// Key layout shared with the original focus-booster data files. Per-day keys
// embed the calendar date so day rollover is a plain string comparison.
const (
	KeySessions        = "focus-booster-sessions"
	KeyLevel           = "focus-booster-level"
	KeyExperience      = "focus-booster-experience"
	KeyTotalExperience = "focus-booster-total-experience"
	KeyTotalPoints     = "focus-booster-total-points"
	KeyTimerSettings   = "focus-booster-timer-settings"
	KeyTasks           = "focus-booster-tasks"
	KeyDistractions    = "focus-booster-distractions"

	goalKeyPrefix    = "focus-goal-"
	awardedKeyPrefix = "focus-booster-points-awarded-"
)

func GoalKey(day string) string {
	return goalKeyPrefix + day
}

func AwardedPointsKey(day string) string {
	return awardedKeyPrefix + day
}
