package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/duedate/internal/views"
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

const urgencyHelp = `| urgency | due |
| --- | --- |
| today | noon today |
| tomorrow | noon tomorrow |
| day-after | noon in two days |
| next-week | noon in seven days |
| two-weeks | noon in fourteen days |
| next-month | noon a month out, clamped to month end |
| day DATE | noon on DATE |
| day-time DATE HH:MM | DATE at HH:MM |
| none | clears the due date |
`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.globalBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
		Urgency: views.RenderMarkdown(urgencyHelp),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Command, Action: "open command palette"},
		{Key: "j/k", Action: "move selection"},
		{Key: m.Keys.Complete, Action: "complete selected task"},
		{Key: m.Keys.Cycle, Action: "cycle open/due/overdue"},
		{Key: m.Keys.Refresh, Action: "reload tasks"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
