package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/duedate/internal/commands"
	"github.com/sandeepkv93/duedate/internal/service"
	"github.com/sandeepkv93/duedate/internal/views"
)

func (m Model) Init() tea.Cmd {
	return waitForDueCmd(m.dueEvents)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		switch typed.String() {
		case m.Keys.Command:
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, m.commandInput.Focus()
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case m.Keys.Cycle:
			m.CurrentView = nextView(m.CurrentView)
			m.Cursor = 0
			m.refresh()
			return m, nil
		case m.Keys.Refresh:
			m.refresh()
			return m, nil
		case m.Keys.Complete:
			if task, ok := m.selected(); ok {
				m.run("done " + task.ID)
			}
			return m, nil
		case "j", "down":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
			}
			return m, nil
		case "k", "up":
			if m.Cursor > 0 {
				m.Cursor--
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		return m, nil
	case DueEventMsg:
		m.DueLog = append(m.DueLog, typed.Event)
		if len(m.DueLog) > dueLogLimit {
			m.DueLog = m.DueLog[len(m.DueLog)-dueLogLimit:]
		}
		m.Status = StatusBar{Text: fmt.Sprintf("due now: %s", typed.Event.Title)}
		m.refresh()
		return m, waitForDueCmd(m.dueEvents)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.setError(typed.Err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command cancelled"}
		return m, nil
	case "enter":
		input := m.commandInput.Value()
		m.closePalette()
		m.run(input)
		return m, nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette = CommandPaletteState{}
	m.commandInput.Blur()
	m.commandInput.SetValue("")
}

// run executes one command line against the task service and reloads the
// listing so positions match what Resolve sees next.
func (m *Model) run(input string) {
	res, err := commands.Run(input, m.tasks.Handlers(m.ctx))
	if err != nil {
		m.Output = nil
		m.setError(err)
		return
	}
	m.LastError = nil
	m.Output = res.Lines
	m.Status = StatusBar{Text: res.Message}
	m.refresh()
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

	rightPane := strings.TrimSpace(strings.Join([]string{
		views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()),
		views.RenderCommandOutput(m.Output),
		m.renderHelpIfVisible(),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("duedate | view: %s | now: %s", m.CurrentView, m.now().In(m.location()).Format("Mon 2006-01-02 15:04")),
		Width:        m.Width,
		TaskPane:     m.renderTaskList(),
		SidePane:     rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderDueLog(),
		Footer: fmt.Sprintf("keys: %s cmd | %s done | %s view | %s refresh | %s help | %s quit",
			m.Keys.Command, m.Keys.Complete, m.Keys.Cycle, m.Keys.Refresh, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderTaskList() string {
	now := m.now()
	loc := m.location()
	items := make([]views.TaskLineData, 0, len(m.Items))
	for i, task := range m.Items {
		items = append(items, views.TaskLineData{
			Pos:      m.positions[task.ID],
			Title:    task.Title,
			Due:      service.FormatDue(task.DueDate, loc),
			HasTime:  task.HasDueTime(),
			Overdue:  task.IsOverdue(now),
			Selected: i == m.Cursor,
		})
	}
	return views.RenderTaskList(views.TaskListData{View: string(m.CurrentView), Items: items})
}

func (m Model) renderDueLog() string {
	loc := m.location()
	items := make([]views.DueLogItemData, 0, len(m.DueLog))
	for _, ev := range m.DueLog {
		at := ev.DueAt.In(loc).Format("Mon 15:04")
		if !ev.HasTime {
			at = ev.DueAt.In(loc).Format("Mon 2006-01-02")
		}
		items = append(items, views.DueLogItemData{Title: ev.Title, At: at})
	}
	return views.RenderDueLog(items)
}
