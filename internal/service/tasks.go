// Package service applies due-date rules to stored tasks and keeps due alarms
// in step with them.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandeepkv93/duedate/internal/model"
	"github.com/sandeepkv93/duedate/internal/scheduler"
	"github.com/sandeepkv93/duedate/internal/storage"
)

var (
	ErrTaskNotFound = errors.New("service: task not found")
	ErrEmptyTitle   = errors.New("service: task title is required")
)

// Alarms receives the due instants of open tasks.
type Alarms interface {
	Schedule(ev scheduler.DueEvent) error
	Cancel(taskID string) int
}

type View string

const (
	ViewOpen    View = "open"
	ViewDue     View = "due"
	ViewOverdue View = "overdue"
)

type TaskService struct {
	repo   storage.Repository
	calc   model.DueDateCalculator
	alarms Alarms
	logger *zap.Logger
	newID  func() string
}

func NewTaskService(repo storage.Repository, calc model.DueDateCalculator, alarms Alarms, logger *zap.Logger) *TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{
		repo:   repo,
		calc:   calc,
		alarms: alarms,
		logger: logger,
		newID:  uuid.NewString,
	}
}

func (s *TaskService) Calculator() model.DueDateCalculator {
	return s.calc
}

func (s *TaskService) AddTask(ctx context.Context, title string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrEmptyTitle
	}
	task := model.Task{
		ID:        s.newID(),
		Title:     title,
		State:     model.TaskStateInbox,
		Priority:  model.PriorityMedium,
		CreatedAt: s.calc.Now().UTC(),
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	if err := s.repo.CreateTask(ctx, toEntity(task)); err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	s.logger.Info("task added", zap.String("task_id", task.ID), zap.String("title", task.Title))
	return task, nil
}

// SetDueDate derives the due date for target from urgency and stores it.
// ref is read only by the specific urgencies.
func (s *TaskService) SetDueDate(ctx context.Context, target string, urgency model.Urgency, ref int64) (model.Task, error) {
	if !urgency.IsValid() {
		return model.Task{}, fmt.Errorf("%w: %q", model.ErrInvalidUrgency, urgency)
	}
	task, err := s.Resolve(ctx, target)
	if err != nil {
		return model.Task{}, err
	}

	task.DueDate = s.calc.CreateDueDate(urgency, ref)
	switch {
	case task.State == model.TaskStateInbox && task.HasDueDate():
		task.State = model.TaskStatePlanned
	case task.State == model.TaskStatePlanned && !task.HasDueDate():
		task.State = model.TaskStateInbox
	}
	if err := s.save(ctx, task); err != nil {
		return model.Task{}, err
	}
	s.logger.Info("due date set",
		zap.String("task_id", task.ID),
		zap.String("urgency", string(urgency)),
		zap.Int64("due_date", task.DueDate),
		zap.Bool("has_time", task.HasDueTime()),
	)
	s.syncAlarm(task)
	return task, nil
}

func (s *TaskService) SetHideUntil(ctx context.Context, target string, setting model.HideUntil, custom int64) (model.Task, error) {
	if !setting.IsValid() {
		return model.Task{}, fmt.Errorf("%w: %q", model.ErrInvalidHideUntil, setting)
	}
	task, err := s.Resolve(ctx, target)
	if err != nil {
		return model.Task{}, err
	}
	task.HideUntil = s.calc.CreateHideUntil(setting, task.DueDate, custom)
	if err := s.save(ctx, task); err != nil {
		return model.Task{}, err
	}
	s.logger.Info("hide-until set",
		zap.String("task_id", task.ID),
		zap.String("setting", string(setting)),
		zap.Int64("hide_until", task.HideUntil),
	)
	return task, nil
}

func (s *TaskService) Complete(ctx context.Context, target string) (model.Task, error) {
	task, err := s.Resolve(ctx, target)
	if err != nil {
		return model.Task{}, err
	}
	if task.State == model.TaskStateDone {
		return task, nil
	}
	completed := s.calc.Now().UTC()
	task.State = model.TaskStateDone
	task.CompletedAt = &completed
	if err := s.save(ctx, task); err != nil {
		return model.Task{}, err
	}
	if s.alarms != nil {
		s.alarms.Cancel(task.ID)
	}
	s.logger.Info("task completed", zap.String("task_id", task.ID))
	return task, nil
}

// List returns open, currently visible tasks for view, ordered by due date.
// Positions in the ViewOpen listing are the 1-based indexes Resolve accepts.
func (s *TaskService) List(ctx context.Context, view View) ([]model.Task, error) {
	filter := storage.TaskListFilter{}
	switch view {
	case ViewOpen:
	case ViewDue:
		filter.OnlyWithDueDate = true
	case ViewOverdue:
		filter.DueBefore = s.calc.Now().UnixMilli()
	default:
		return nil, fmt.Errorf("service: unknown view %q", view)
	}
	items, err := s.repo.ListTasks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	now := s.calc.Now()
	out := make([]model.Task, 0, len(items))
	for _, item := range items {
		task := fromEntity(item)
		if task.State == model.TaskStateDone || task.IsHidden(now) {
			continue
		}
		if view == ViewOverdue && !task.IsOverdue(now) {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (s *TaskService) Overdue(ctx context.Context) ([]model.Task, error) {
	return s.List(ctx, ViewOverdue)
}

// Resolve finds a task by id, or by its 1-based position in the open listing.
func (s *TaskService) Resolve(ctx context.Context, target string) (model.Task, error) {
	target = strings.TrimSpace(target)
	if idx, err := strconv.Atoi(target); err == nil {
		open, listErr := s.List(ctx, ViewOpen)
		if listErr != nil {
			return model.Task{}, listErr
		}
		if idx < 1 || idx > len(open) {
			return model.Task{}, fmt.Errorf("%w: index %d", ErrTaskNotFound, idx)
		}
		return open[idx-1], nil
	}
	item, err := s.repo.GetTask(ctx, target)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, target)
		}
		return model.Task{}, fmt.Errorf("get task: %w", err)
	}
	return fromEntity(item), nil
}

// RestoreAlarms schedules alarms for every open task still due in the future.
func (s *TaskService) RestoreAlarms(ctx context.Context) (int, error) {
	if s.alarms == nil {
		return 0, nil
	}
	items, err := s.repo.ListTasks(ctx, storage.TaskListFilter{OnlyWithDueDate: true})
	if err != nil {
		return 0, fmt.Errorf("list tasks: %w", err)
	}
	now := s.calc.Now()
	restored := 0
	for _, item := range items {
		task := fromEntity(item)
		if task.State == model.TaskStateDone || task.DueDate <= now.UnixMilli() {
			continue
		}
		if s.scheduleAlarm(task) {
			restored++
		}
	}
	s.logger.Debug("alarms restored", zap.Int("count", restored))
	return restored, nil
}

func (s *TaskService) save(ctx context.Context, task model.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateTask(ctx, toEntity(task)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrTaskNotFound, task.ID)
		}
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (s *TaskService) syncAlarm(task model.Task) {
	if s.alarms == nil {
		return
	}
	s.alarms.Cancel(task.ID)
	if task.HasDueDate() && task.State != model.TaskStateDone {
		s.scheduleAlarm(task)
	}
}

func (s *TaskService) scheduleAlarm(task model.Task) bool {
	dueAt, ok := task.DueTime(s.calc.Location())
	if !ok {
		return false
	}
	err := s.alarms.Schedule(scheduler.DueEvent{
		TaskID:  task.ID,
		Title:   task.Title,
		DueAt:   dueAt,
		HasTime: task.HasDueTime(),
	})
	if err != nil {
		s.logger.Warn("schedule due alarm failed", zap.String("task_id", task.ID), zap.Error(err))
		return false
	}
	return true
}

func toEntity(t model.Task) storage.Task {
	return storage.Task{
		ID:          t.ID,
		Title:       t.Title,
		Notes:       t.Notes,
		State:       string(t.State),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		HideUntil:   t.HideUntil,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}

func fromEntity(t storage.Task) model.Task {
	return model.Task{
		ID:          t.ID,
		Title:       t.Title,
		Notes:       t.Notes,
		State:       model.TaskState(t.State),
		Priority:    model.Priority(t.Priority),
		DueDate:     t.DueDate,
		HideUntil:   t.HideUntil,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}

// FormatDue renders a due date for listings: date only, or date and time when
// the due date carries one.
func FormatDue(dueDate int64, loc *time.Location) string {
	if !model.HasDueDate(dueDate) {
		return "no due date"
	}
	t := time.UnixMilli(dueDate).In(loc)
	if model.HasDueTime(dueDate) {
		return t.Format("Mon 2006-01-02 15:04")
	}
	return t.Format("Mon 2006-01-02")
}
