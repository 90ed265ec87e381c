package storage

import "time"

type Task struct {
	ID          string
	Title       string
	Notes       string
	State       string
	Priority    string
	DueDate     int64
	HideUntil   int64
	CreatedAt   time.Time
	CompletedAt *time.Time
}

type TaskListFilter struct {
	State string
	// DueBefore keeps tasks whose due date is set and earlier than this epoch
	// millisecond value. Zero disables the bound.
	DueBefore       int64
	OnlyWithDueDate bool
	Limit           int
	Offset          int
}
