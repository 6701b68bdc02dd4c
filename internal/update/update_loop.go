package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/scheduler"
	"github.com/sandeepkv93/focusd/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForRolloverCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		// Every key press is a user-activity signal for the idle guard; it
		// may resume a guard-paused timer before the key itself is handled.
		m.guard.Activity(m.now())
		m.drainEvents()

		if m.Palette.Active {
			next := m.handlePaletteKey(typed)
			return next.ensureTicking(nil)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m.ensureTicking(nil)
		case m.Keys.Focus:
			m.CurrentView = ViewFocus
			return m.ensureTicking(nil)
		case m.Keys.Goal:
			m.CurrentView = ViewGoal
			return m.ensureTicking(nil)
		case m.Keys.Score:
			m.CurrentView = ViewScore
			return m.ensureTicking(nil)
		case m.Keys.Sessions:
			m.CurrentView = ViewSessions
			m.syncBubbleData()
			return m.ensureTicking(nil)
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m.ensureTicking(nil)
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		next, cmd := m.handleTimerKey(typed)
		return next.ensureTicking(cmd)
	case TimerTickMsg:
		return m.onTimerTick()
	case spinner.TickMsg:
		if m.spinnerActive && m.timer.Running() {
			var cmd tea.Cmd
			m.runSpinner, cmd = m.runSpinner.Update(typed)
			return m, cmd
		}
		m.spinnerActive = false
		return m, nil
	case RolloverEventMsg:
		return m.onRolloverEvent(typed.Event)
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify(Notification{Title: "Error", Body: typed.Err.Error(), Level: "error", At: m.now()})
		}
		return m, nil
	}

	return m, nil
}

func (m Model) onTimerTick() (tea.Model, tea.Cmd) {
	if !m.ticking {
		return m, nil
	}
	now := m.now()
	m.guard.Tick(now)
	m.timer.Tick()
	if m.drainEvents() {
		if err := m.refreshDerived(); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		}
		m.recomputeScore()
		m.drainEvents()
	}
	if m.timer.Running() || m.guard.Idle() {
		return m, timerTickCmd()
	}
	m.ticking = false
	return m, nil
}

func (m Model) onRolloverEvent(ev scheduler.Event) (tea.Model, tea.Cmd) {
	rolled, err := m.tracker.CheckRollover(m.ctx)
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("day rollover: %v", err), IsError: true}
	}
	// The minute check doubles as the coarse fallback for state written by
	// another process sharing the store: tasks, distractions and awarded
	// points are re-read and rescored even when no day boundary was crossed.
	if err := m.refreshDerived(); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
	m.recomputeScore()
	if rolled {
		m.Status = StatusBar{Text: "new day started, goal progress reset", IsError: false}
	}
	m.drainEvents()

	if m.Scheduler != nil {
		next := scheduler.Event{ID: ev.ID, Kind: ev.Kind}
		switch ev.Kind {
		case scheduler.KindMidnight:
			next.TriggerAt = scheduler.NextMidnight(m.now())
		default:
			next.TriggerAt = m.now().Add(time.Minute)
		}
		if err := m.Scheduler.Schedule(next); err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("reschedule rollover check: %v", err), IsError: true}
		}
		return m, waitForRolloverCmd(m.Scheduler.C())
	}
	return m, nil
}

// ensureTicking keeps exactly one second-tick chain alive while the timer
// runs or the guard counts idle time, and one spinner chain while running.
func (m Model) ensureTicking(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{}
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if (m.timer.Running() || m.guard.Idle()) && !m.ticking {
		m.ticking = true
		cmds = append(cmds, timerTickCmd())
	}
	if m.timer.Running() && !m.spinnerActive {
		m.spinnerActive = true
		cmds = append(cmds, m.runSpinner.Tick)
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewFocus:
		leftPane = m.renderFocusView()
		rightPane = m.renderGoalView() + "\n" + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewGoal:
		leftPane = m.renderGoalView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewScore:
		leftPane = m.renderScoreView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewSessions:
		leftPane = m.renderSessionsView()
		rightPane = m.renderSummaryView() + m.renderCommandPalette() + m.renderHelpIfVisible()
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("focusd | view: %s | %s", m.CurrentView, m.headerClock()),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: m.renderNotificationsView(),
		Footer:       fmt.Sprintf("keys: %s focus | %s goal | %s score | %s sessions | / cmd | %s help | %s quit", m.Keys.Focus, m.Keys.Goal, m.Keys.Score, m.Keys.Sessions, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) headerClock() string {
	if m.timer.Running() {
		return m.runSpinner.View() + " " + formatDuration(m.timer.Remaining())
	}
	return formatDuration(m.timer.Remaining())
}

func timerTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return TimerTickMsg{} })
}

func waitForRolloverCmd(ch <-chan scheduler.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return RolloverEventMsg{Event: ev}
	}
}

func isKnownView(v View) bool {
	switch v {
	case ViewFocus, ViewGoal, ViewScore, ViewSessions:
		return true
	default:
		return false
	}
}
