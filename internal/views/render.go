package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	// DefaultWidth is used until the terminal reports its size.
	DefaultWidth = 112
	// below this the task list and side pane stack vertically
	minSplitWidth = 80
)

// AppData is one frame: the task list on the left, command output and help
// on the right.
type AppData struct {
	Width        int
	Header       string
	TaskPane     string
	SidePane     string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	noticeStyle = paneStyle.BorderForeground(lipgloss.Color("11"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderApp(data AppData) string {
	width := data.Width
	if width <= 0 {
		width = DefaultWidth
	}

	lines := []string{headerStyle.MaxWidth(width).Render(data.Header), renderPanes(width, data.TaskPane, data.SidePane)}
	if data.StatusLine != "" {
		style := statusStyle
		if data.StatusError {
			style = errorStyle
		}
		lines = append(lines, style.Width(width).Render(data.StatusLine))
	}
	if data.Notification != "" {
		lines = append(lines, noticeStyle.Width(paneWidth(width)).Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Width(width).Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// renderPanes gives the task list three fifths of width. An empty side pane
// hands the whole row to the list.
func renderPanes(width int, tasks, side string) string {
	if strings.TrimSpace(side) == "" {
		return paneStyle.Width(paneWidth(width)).Render(tasks)
	}
	if width < minSplitWidth {
		return lipgloss.JoinVertical(lipgloss.Left,
			paneStyle.Width(paneWidth(width)).Render(tasks),
			paneStyle.Width(paneWidth(width)).Render(side),
		)
	}
	left := width * 3 / 5
	return lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Width(paneWidth(left)).Render(tasks),
		paneStyle.Width(paneWidth(width-left)).Render(side),
	)
}

// paneWidth converts an outer width into the style width, which excludes the
// border.
func paneWidth(outer int) int {
	return outer - paneStyle.GetHorizontalBorderSize()
}

// RenderMarkdown renders md for the terminal, falling back to the raw text
// when glamour cannot render it.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
