package views

import (
	"fmt"
	"strings"
)

type FocusPanelData struct {
	Kind           string
	Timer          string
	Running        bool
	ProgressView   string
	ProgressPct    int
	CompletedToday int
	Task           string
	Tag            string
	Idle           bool
	IdleSeconds    int
}

type GoalPanelData struct {
	Goal         int
	Count        int
	Met          bool
	ProgressView string
}

type ScorePanelData struct {
	Score              int
	Pomodoros          int
	Tasks              int
	Distractions       int
	PomodoroScore      int
	TaskScore          int
	DistractionPenalty int
	FocusTimeBonus     float64
	Level              int
	LevelTitle         string
	Experience         int
	NextLevelAt        int
	AtMaxLevel         bool
	ExpProgressView    string
	TotalExperience    int
	TotalPoints        int
}

type SessionsPanelData struct {
	TableView string
	Total     int
}

type HelpPanelData struct {
	CurrentView string
	Commands    []string
	HelpView    string
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	b.WriteString(fmt.Sprintf("interval: %s\n", strings.ToUpper(data.Kind)))
	state := "paused"
	if data.Running {
		state = "running"
	}
	b.WriteString(fmt.Sprintf("timer: %s (%s)\n", data.Timer, state))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("sessions today: %d\n", data.CompletedToday))
	if data.Task != "" {
		b.WriteString(fmt.Sprintf("task: %s\n", data.Task))
	} else {
		b.WriteString("task: (none)\n")
	}
	if data.Tag != "" {
		b.WriteString(fmt.Sprintf("tag: %s\n", data.Tag))
	}
	b.WriteString("actions: [space]start/pause [r]reset\n")
	if data.Idle {
		b.WriteString(fmt.Sprintf("idle: away %ds, timer paused; any key resumes", data.IdleSeconds))
	}
	return strings.TrimSpace(b.String())
}

func RenderGoalPanel(data GoalPanelData) string {
	var b strings.Builder
	b.WriteString("daily goal:\n")
	b.WriteString(fmt.Sprintf("sessions: %d / %d\n", data.Count, data.Goal))
	b.WriteString(fmt.Sprintf("progress: %s\n", data.ProgressView))
	if data.Met {
		b.WriteString("goal met for today\n")
	} else {
		remaining := data.Goal - data.Count
		b.WriteString(fmt.Sprintf("%d session(s) to go\n", remaining))
	}
	b.WriteString("set with: /goal <n>")
	return strings.TrimSpace(b.String())
}

func RenderScorePanel(data ScorePanelData) string {
	var b strings.Builder
	b.WriteString("productivity score:\n")
	b.WriteString(fmt.Sprintf("today: %d / 100\n", data.Score))
	b.WriteString("breakdown:\n")
	b.WriteString(fmt.Sprintf("  pomodoros: %d -> %+d\n", data.Pomodoros, data.PomodoroScore))
	b.WriteString(fmt.Sprintf("  tasks: %d -> %+d\n", data.Tasks, data.TaskScore))
	b.WriteString(fmt.Sprintf("  distractions: %d -> %+d\n", data.Distractions, data.DistractionPenalty))
	b.WriteString(fmt.Sprintf("  focus-time bonus: %+.1f\n", data.FocusTimeBonus))
	b.WriteString(fmt.Sprintf("level %d: %s\n", data.Level, data.LevelTitle))
	if data.AtMaxLevel {
		b.WriteString(fmt.Sprintf("experience: %d (max level)\n", data.Experience))
	} else {
		b.WriteString(fmt.Sprintf("experience: %s %d / %d\n", data.ExpProgressView, data.Experience, data.NextLevelAt))
	}
	b.WriteString(fmt.Sprintf("lifetime: %d xp, %d points", data.TotalExperience, data.TotalPoints))
	return strings.TrimSpace(b.String())
}

func RenderSessionsPanel(data SessionsPanelData) string {
	var b strings.Builder
	b.WriteString("session history:\n")
	b.WriteString(fmt.Sprintf("recorded: %d (newest first)\n", data.Total))
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

func RenderSummaryPane(viewportView string) string {
	return "summary:\n" + viewportView
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s view):\ncommands:\n%s\nkeys:\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Commands, "\n"),
		data.HelpView,
	)
}
