package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleTimerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if m.timer.Running() {
			m.timer.Pause()
			m.Status = StatusBar{Text: "timer paused", IsError: false}
			return m, nil
		}
		m.timer.Start()
		m.Status = StatusBar{Text: "timer running", IsError: false}
		return m, nil
	case "r":
		m.timer.Reset()
		if m.drainEvents() {
			return m, nil
		}
		m.Status = StatusBar{Text: "timer reset", IsError: false}
		return m, nil
	}
	return m, nil
}
