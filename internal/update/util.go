package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/duedate/internal/scheduler"
	"github.com/sandeepkv93/duedate/internal/service"
)

var viewCycle = []service.View{service.ViewOpen, service.ViewDue, service.ViewOverdue}

func nextView(v service.View) service.View {
	for i, candidate := range viewCycle {
		if candidate == v {
			return viewCycle[(i+1)%len(viewCycle)]
		}
	}
	return service.ViewOpen
}

func waitForDueCmd(ch <-chan scheduler.DueEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return DueEventMsg{Event: ev}
	}
}
