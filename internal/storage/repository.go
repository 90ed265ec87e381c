package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTask(ctx context.Context, in Task) error
	GetTask(ctx context.Context, id string) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)
}
