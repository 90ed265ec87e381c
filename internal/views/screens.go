package views

import (
	"fmt"
	"strings"
)

type TaskLineData struct {
	Pos      int
	Title    string
	Due      string
	HasTime  bool
	Overdue  bool
	Selected bool
}

type TaskListData struct {
	View  string
	Items []TaskLineData
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
	Urgency  string
}

type DueLogItemData struct {
	Title string
	At    string
}

func RenderTaskList(data TaskListData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s:\n", data.View))
	b.WriteString("actions: [j/k]move [v]view [x]done [r]refresh [/]command\n")
	if len(data.Items) == 0 {
		b.WriteString("\n  (no tasks)")
		return b.String()
	}
	b.WriteString("\n")
	for _, item := range data.Items {
		cursor := " "
		if item.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s %s | %s\n", cursor, item.Pos, dueBadge(item), item.Title, item.Due))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderCommandOutput(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return "\noutput:\n" + strings.Join(lines, "\n")
}

func RenderDueLog(items []DueLogItemData) string {
	if len(items) == 0 {
		return ""
	}
	last := items[len(items)-1]
	return fmt.Sprintf("last-due: %s @ %s (%d fired)", last.Title, last.At, len(items))
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("\nhelp:\n")
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if data.HelpView != "" {
		b.WriteString("\n" + data.HelpView)
	}
	if data.Urgency != "" {
		b.WriteString("\n\n" + data.Urgency)
	}
	return b.String()
}

func dueBadge(item TaskLineData) string {
	switch {
	case item.Overdue:
		return "[RED]"
	case item.HasTime:
		return "[YELLOW]"
	case item.Due == "" || item.Due == "no due date":
		return "[ ]"
	default:
		return "[GREEN]"
	}
}
