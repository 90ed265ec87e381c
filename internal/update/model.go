package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/duedate/internal/commands"
	"github.com/sandeepkv93/duedate/internal/model"
	"github.com/sandeepkv93/duedate/internal/scheduler"
	"github.com/sandeepkv93/duedate/internal/service"
)

// Tasks is the slice of the task service the TUI drives.
type Tasks interface {
	Handlers(ctx context.Context) commands.Handlers
	List(ctx context.Context, view service.View) ([]model.Task, error)
	Calculator() model.DueDateCalculator
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Command  string
	Complete string
	Cycle    string
	Refresh  string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

const dueLogLimit = 20

type Model struct {
	CurrentView service.View
	Items       []model.Task
	Cursor      int
	Output      []string
	DueLog      []scheduler.DueEvent
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error
	Width       int

	ctx          context.Context
	tasks        Tasks
	positions    map[string]int
	dueEvents    <-chan scheduler.DueEvent
	commandInput textinput.Model
	helpModel    help.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type AppErrorMsg struct {
	Err error
}

type DueEventMsg struct {
	Event scheduler.DueEvent
}

// NewModel builds the TUI over tasks. dueEvents may be nil when no scheduler
// runs.
func NewModel(ctx context.Context, tasks Tasks, dueEvents <-chan scheduler.DueEvent) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		CurrentView: service.ViewOpen,
		Keys: GlobalKeyMap{
			Command:  "/",
			Complete: "x",
			Cycle:    "v",
			Refresh:  "r",
			Help:     "?",
			Quit:     "q",
		},
		ctx:       ctx,
		tasks:     tasks,
		dueEvents: dueEvents,
	}
	m.initBubbleComponents()
	m.refresh()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.Placeholder = "due 1 next-week"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
}

func (m *Model) now() time.Time {
	return m.tasks.Calculator().Now()
}

func (m *Model) location() *time.Location {
	return m.tasks.Calculator().Location()
}

// refresh reloads the current view and keeps the cursor in range.
func (m *Model) refresh() {
	items, err := m.tasks.List(m.ctx, m.CurrentView)
	if err != nil {
		m.setError(err)
		return
	}
	m.Items = items
	if err := m.indexPositions(); err != nil {
		m.setError(err)
	}
	if m.Cursor >= len(m.Items) {
		m.Cursor = len(m.Items) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// indexPositions maps task ids to their 1-based place in the open listing,
// which is what commands accept as a target.
func (m *Model) indexPositions() error {
	open := m.Items
	if m.CurrentView != service.ViewOpen {
		var err error
		if open, err = m.tasks.List(m.ctx, service.ViewOpen); err != nil {
			return err
		}
	}
	m.positions = make(map[string]int, len(open))
	for i, task := range open {
		m.positions[task.ID] = i + 1
	}
	return nil
}

func (m *Model) selected() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Items) {
		return model.Task{}, false
	}
	return m.Items[m.Cursor], true
}

func (m *Model) setError(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}
