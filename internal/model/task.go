package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidState     = errors.New("model: invalid task state")
	ErrInvalidPriority  = errors.New("model: invalid task priority")
	ErrNegativeDueDate  = errors.New("model: due date must not be negative")
	ErrNegativeHideDate = errors.New("model: hide-until must not be negative")
)

type TaskState string

const (
	TaskStateInbox   TaskState = "Inbox"
	TaskStatePlanned TaskState = "Planned"
	TaskStateDone    TaskState = "Done"
)

func (s TaskState) IsValid() bool {
	switch s {
	case TaskStateInbox, TaskStatePlanned, TaskStateDone:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

type Task struct {
	ID          string
	Title       string
	Notes       string
	State       TaskState
	Priority    Priority
	DueDate     int64
	HideUntil   int64
	CreatedAt   time.Time
	CompletedAt *time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.State.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidState, t.State)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.DueDate < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeDueDate, t.DueDate)
	}
	if t.HideUntil < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeHideDate, t.HideUntil)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.State == TaskStateDone && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when task state is Done")
	}
	if t.State != TaskStateDone && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when task state is not Done")
	}
	return nil
}

func (t Task) HasDueDate() bool { return HasDueDate(t.DueDate) }

func (t Task) HasDueTime() bool { return HasDueTime(t.DueDate) }

// IsOverdue compares against now for timed due dates and against the start of
// now's day for date-only ones, so a date-only task is not overdue until its
// day is over.
func (t Task) IsOverdue(now time.Time) bool {
	if !t.HasDueDate() || t.State == TaskStateDone {
		return false
	}
	compareTo := now
	if !t.HasDueTime() {
		compareTo = startOfDay(now)
	}
	return t.DueDate < compareTo.UnixMilli()
}

// IsHidden reports whether the task should stay out of listings at now.
func (t Task) IsHidden(now time.Time) bool {
	return t.HideUntil > 0 && now.UnixMilli() < t.HideUntil
}

// DueTime returns the due date as a time in loc, or false when unset.
func (t Task) DueTime(loc *time.Location) (time.Time, bool) {
	if !t.HasDueDate() {
		return time.Time{}, false
	}
	return time.UnixMilli(t.DueDate).In(loc), true
}
