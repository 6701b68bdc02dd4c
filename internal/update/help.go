package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/focusd/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.commandBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Commands:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Focus, Action: "focus view"},
		{Key: m.Keys.Goal, Action: "goal view"},
		{Key: m.Keys.Score, Action: "score view"},
		{Key: m.Keys.Sessions, Action: "session history"},
		{Key: "space", Action: "start/pause timer"},
		{Key: "r", Action: "reset current interval"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) commandBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "/goal <n>", Action: "set today's session goal"},
		{Key: "/settings <f> <s> <l> <i>", Action: "set focus/short/long minutes and long-break interval"},
		{Key: "/task <title>", Action: "add a task"},
		{Key: "/done <n>", Action: "complete task n"},
		{Key: "/distract [note]", Action: "log a distraction"},
		{Key: "/tag [label]", Action: "tag upcoming sessions"},
	}
}

func (m Model) helpBindings() []key.Binding {
	globals := m.globalBindings()
	out := make([]key.Binding, 0, len(globals))
	for _, kb := range globals {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
