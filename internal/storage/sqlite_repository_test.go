package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "duedate-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestTaskCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")

	task := Task{
		ID:        "task-1",
		Title:     "Write schema",
		Notes:     "Design storage layout",
		State:     "Inbox",
		Priority:  "High",
		CreatedAt: created,
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	got, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Title != task.Title || got.State != "Inbox" || got.DueDate != 0 {
		t.Fatalf("unexpected task get result: %#v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created_at mismatch: got %s want %s", got.CreatedAt, created)
	}

	due := parseRFC3339(t, "2026-02-10T09:30:01Z").UnixMilli()
	completed := parseRFC3339(t, "2026-02-10T08:00:00Z")
	task.Title = "Write schema v2"
	task.State = "Done"
	task.DueDate = due
	task.HideUntil = parseRFC3339(t, "2026-02-10T00:00:00Z").UnixMilli()
	task.CompletedAt = &completed
	if err := repo.UpdateTask(ctx, task); err != nil {
		t.Fatalf("update task: %v", err)
	}

	done, err := repo.ListTasks(ctx, TaskListFilter{State: "Done"})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(done) != 1 || done[0].ID != task.ID || done[0].DueDate != due || done[0].CompletedAt == nil {
		t.Fatalf("unexpected done list: %#v", done)
	}

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	_, err = repo.GetTask(ctx, task.ID)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestUpdateAndDeleteMissingTask(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	err := repo.UpdateTask(ctx, Task{ID: "missing", Title: "x", State: "Inbox", Priority: "Low"})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on update, got: %v", err)
	}
	if err := repo.DeleteTask(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on delete, got: %v", err)
	}
}

func TestListTasksDueFilters(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")

	items := []Task{
		{ID: "no-due", Title: "Someday", State: "Inbox", Priority: "Low", CreatedAt: created},
		{ID: "late", Title: "Late", State: "Planned", Priority: "High", DueDate: parseRFC3339(t, "2026-02-12T12:00:00Z").UnixMilli(), CreatedAt: created.Add(time.Minute)},
		{ID: "soon", Title: "Soon", State: "Planned", Priority: "High", DueDate: parseRFC3339(t, "2026-02-10T12:00:00Z").UnixMilli(), CreatedAt: created.Add(2 * time.Minute)},
	}
	for _, item := range items {
		if err := repo.CreateTask(ctx, item); err != nil {
			t.Fatalf("create %s: %v", item.ID, err)
		}
	}

	all, err := repo.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 || all[0].ID != "soon" || all[1].ID != "late" || all[2].ID != "no-due" {
		t.Fatalf("unexpected ordering: %#v", all)
	}

	withDue, err := repo.ListTasks(ctx, TaskListFilter{OnlyWithDueDate: true})
	if err != nil {
		t.Fatalf("list with due: %v", err)
	}
	if len(withDue) != 2 {
		t.Fatalf("expected 2 tasks with due date, got %d", len(withDue))
	}

	before, err := repo.ListTasks(ctx, TaskListFilter{DueBefore: parseRFC3339(t, "2026-02-11T00:00:00Z").UnixMilli()})
	if err != nil {
		t.Fatalf("list due before: %v", err)
	}
	if len(before) != 1 || before[0].ID != "soon" {
		t.Fatalf("unexpected due-before list: %#v", before)
	}

	page, err := repo.ListTasks(ctx, TaskListFilter{Offset: 1})
	if err != nil {
		t.Fatalf("list with offset: %v", err)
	}
	if len(page) != 2 || page[0].ID != "late" {
		t.Fatalf("unexpected offset page: %#v", page)
	}
}
