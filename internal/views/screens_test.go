package views

import (
	"strings"
	"testing"
)

func TestRenderTaskListBadges(t *testing.T) {
	out := RenderTaskList(TaskListData{
		View: "open",
		Items: []TaskLineData{
			{Pos: 1, Title: "late", Due: "Mon 2013-12-30", Overdue: true, Selected: true},
			{Pos: 2, Title: "call", Due: "Tue 2013-12-31 17:00", HasTime: true},
			{Pos: 3, Title: "plan", Due: "Tue 2014-01-07"},
			{Pos: 4, Title: "someday", Due: "no due date"},
		},
	})
	for _, want := range []string{
		"> 1. [RED] late | Mon 2013-12-30",
		"  2. [YELLOW] call | Tue 2013-12-31 17:00",
		"  3. [GREEN] plan",
		"  4. [ ] someday | no due date",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderEmptyPieces(t *testing.T) {
	if !strings.Contains(RenderTaskList(TaskListData{View: "due"}), "(no tasks)") {
		t.Fatalf("expected empty marker")
	}
	if RenderCommandPalette(false, "x") != "" {
		t.Fatalf("inactive palette should render nothing")
	}
	if RenderCommandOutput(nil) != "" || RenderDueLog(nil) != "" {
		t.Fatalf("empty output and log should render nothing")
	}
	if RenderMarkdown("  ") != "" {
		t.Fatalf("blank markdown should render nothing")
	}
}

func TestRenderDueLogShowsLatest(t *testing.T) {
	got := RenderDueLog([]DueLogItemData{{Title: "a", At: "Mon 09:00"}, {Title: "b", At: "Mon 10:00"}})
	if got != "last-due: b @ Mon 10:00 (2 fired)" {
		t.Fatalf("unexpected due log: %q", got)
	}
}
