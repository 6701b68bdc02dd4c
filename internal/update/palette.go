package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/commands"
	"github.com/sandeepkv93/focusd/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Goal: func(a commands.GoalArgs) (commands.Result, error) {
			if _, err := m.tracker.SetGoal(m.ctx, a.Target); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("daily goal set to %d sessions", a.Target)}, nil
		},
		Settings: func(a commands.SettingsArgs) (commands.Result, error) {
			cfg := model.SessionConfig{
				FocusMinutes:      a.FocusMinutes,
				ShortBreakMinutes: a.ShortBreakMinutes,
				LongBreakMinutes:  a.LongBreakMinutes,
				LongBreakInterval: a.LongBreakInterval,
			}
			if err := m.timer.UpdateConfig(cfg); err != nil {
				return commands.Result{}, err
			}
			if err := m.records.SaveTimerSettings(m.ctx, cfg); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("timer set to %d/%d/%d, long break every %d", a.FocusMinutes, a.ShortBreakMinutes, a.LongBreakMinutes, a.LongBreakInterval)}, nil
		},
		Task: func(a commands.TaskArgs) (commands.Result, error) {
			tasks := append(m.Tasks, model.Task{
				ID:   m.now().UnixMilli(),
				Text: a.Title,
			})
			if err := m.records.SaveTasks(m.ctx, tasks); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("task added: %s", a.Title)}, nil
		},
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			if a.Index > len(m.Tasks) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task %d", a.Index)}
			}
			tasks := make([]model.Task, len(m.Tasks))
			copy(tasks, m.Tasks)
			t := &tasks[a.Index-1]
			if t.Completed {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("task %d already done", a.Index)}
			}
			t.Completed = true
			t.CompletedAt = m.now().Format(time.RFC3339)
			if err := m.records.SaveTasks(m.ctx, tasks); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("task done: %s", t.Text)}, nil
		},
		Distract: func(a commands.DistractArgs) (commands.Result, error) {
			now := m.now()
			if err := m.records.AppendDistraction(m.ctx, model.Distraction{
				ID:     now.UnixMilli(),
				Reason: a.Reason,
				Date:   model.DayKey(now),
			}); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "distraction logged"}, nil
		},
		Tag: func(a commands.TagArgs) (commands.Result, error) {
			m.SessionTag = a.Label
			if a.Label == "" {
				return commands.Result{Message: "session tag cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("session tag: %s", a.Label)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify(Notification{Title: "Command Failed", Body: err.Error(), Level: "error", At: m.now()})
	} else {
		if err := m.refreshDerived(); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		} else {
			m.recomputeScore()
			m.drainEvents()
			m.Status = StatusBar{Text: res.Message, IsError: false}
			m.notify(Notification{Title: "Command", Body: res.Message, Level: "info", At: m.now()})
		}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}
