package update

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/views"
)

func (m *Model) syncBubbleData() {
	rows := make([]table.Row, 0, len(m.Sessions))
	for _, rec := range m.Sessions {
		rows = append(rows, table.Row{
			sessionClock(rec.Timestamp),
			string(rec.Kind),
			strconv.Itoa(rec.Duration),
			rec.Task,
			rec.Tag,
		})
	}
	m.sessionsTable.SetRows(rows)

	m.summaryViewport.SetContent(views.RenderMarkdown(m.summaryMarkdown()))
}

func (m Model) renderFocusView() string {
	total := m.timer.SessionTotal()
	pct := 0.0
	if total > 0 {
		pct = float64(total-m.timer.Remaining()) / float64(total)
	}
	return views.RenderFocusPanel(views.FocusPanelData{
		Kind:           string(m.timer.Kind()),
		Timer:          formatDuration(m.timer.Remaining()),
		Running:        m.timer.Running(),
		ProgressView:   m.focusProgress.ViewAs(pct),
		ProgressPct:    int(pct * 100),
		CompletedToday: m.Goal.Count,
		Task:           m.currentTaskText(),
		Tag:            m.SessionTag,
		Idle:           m.guard.Idle(),
		IdleSeconds:    m.guard.IdleSeconds(),
	})
}

func (m Model) renderGoalView() string {
	pct := 0.0
	if m.Goal.Goal > 0 {
		pct = float64(m.Goal.Count) / float64(m.Goal.Goal)
		if pct > 1 {
			pct = 1
		}
	}
	return views.RenderGoalPanel(views.GoalPanelData{
		Goal:         m.Goal.Goal,
		Count:        m.Goal.Count,
		Met:          m.Goal.Met(),
		ProgressView: m.goalProgress.ViewAs(pct),
	})
}

func (m Model) renderScoreView() string {
	state := m.Score.State
	threshold := state.ExperienceForNextLevel()
	pct := 0.0
	if threshold > 0 {
		pct = float64(state.Experience) / float64(threshold)
		if pct > 1 {
			pct = 1
		}
	}
	b := m.Score.Breakdown
	return views.RenderScorePanel(views.ScorePanelData{
		Score:              m.Score.Score,
		Pomodoros:          b.Pomodoros,
		Tasks:              b.Tasks,
		Distractions:       b.Distractions,
		PomodoroScore:      b.PomodoroScore,
		TaskScore:          b.TaskScore,
		DistractionPenalty: b.DistractionPenalty,
		FocusTimeBonus:     b.FocusTimeBonus,
		Level:              state.Level,
		LevelTitle:         model.LevelTitle(state.Level),
		Experience:         state.Experience,
		NextLevelAt:        threshold,
		AtMaxLevel:         state.Level >= model.MaxLevel,
		ExpProgressView:    m.expProgress.ViewAs(pct),
		TotalExperience:    state.TotalExperience,
		TotalPoints:        state.TotalPoints,
	})
}

func (m Model) renderSessionsView() string {
	return views.RenderSessionsPanel(views.SessionsPanelData{
		TableView: m.sessionsTable.View(),
		Total:     len(m.Sessions),
	})
}

func (m Model) renderSummaryView() string {
	return views.RenderSummaryPane(m.summaryViewport.View())
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

// summaryMarkdown builds the daily summary shown in the sessions view:
// today's focus output plus the open task list.
func (m Model) summaryMarkdown() string {
	today := model.DayKey(m.now())
	work := 0
	breaks := 0
	focusMinutes := 0
	for _, rec := range m.Sessions {
		if rec.Date != today {
			continue
		}
		if rec.Kind == model.RecordKindWork {
			work++
			focusMinutes += rec.Duration
		} else {
			breaks++
		}
	}
	tasksDone := 0
	var open []string
	for _, t := range m.Tasks {
		if t.CompletedOn(today) {
			tasksDone++
		}
		if !t.Completed {
			open = append(open, t.Text)
		}
	}
	distractions := 0
	for _, d := range m.Distractions {
		if d.Date == today {
			distractions++
		}
	}

	var b strings.Builder
	b.WriteString("# Today\n\n")
	b.WriteString(fmt.Sprintf("- focus sessions: **%d** (%d min)\n", work, focusMinutes))
	b.WriteString(fmt.Sprintf("- breaks taken: %d\n", breaks))
	b.WriteString(fmt.Sprintf("- tasks completed: %d\n", tasksDone))
	b.WriteString(fmt.Sprintf("- distractions: %d\n", distractions))
	if len(open) > 0 {
		b.WriteString("\n## Open tasks\n\n")
		for i, text := range open {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, text))
		}
	}
	return b.String()
}

func sessionClock(stamp string) string {
	if len(stamp) >= 16 {
		// RFC3339: date is the first 10 bytes, clock the next 5.
		return stamp[11:16]
	}
	return stamp
}
