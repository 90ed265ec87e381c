package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sandeepkv93/duedate/internal/commands"
	"github.com/sandeepkv93/duedate/internal/model"
)

// Handlers binds the command dispatcher to the service.
func (s *TaskService) Handlers(ctx context.Context) commands.Handlers {
	loc := s.calc.Location()
	return commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := s.AddTask(ctx, a.Title)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added %q", task.Title)}, nil
		},
		Due: func(a commands.DueArgs) (commands.Result, error) {
			ref, err := a.When.In(loc)
			if err != nil {
				return commands.Result{}, err
			}
			task, err := s.SetDueDate(ctx, a.Target, a.Urgency, ref)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("%q due %s", task.Title, FormatDue(task.DueDate, loc))}, nil
		},
		Hide: func(a commands.HideArgs) (commands.Result, error) {
			custom, err := a.When.In(loc)
			if err != nil {
				return commands.Result{}, err
			}
			task, err := s.SetHideUntil(ctx, a.Target, a.Setting, custom)
			if err != nil {
				return commands.Result{}, err
			}
			if task.HideUntil == 0 {
				return commands.Result{Message: fmt.Sprintf("%q is visible", task.Title)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("%q hidden until %s", task.Title, FormatDue(task.HideUntil, loc))}, nil
		},
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			task, err := s.Complete(ctx, a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("completed %q", task.Title)}, nil
		},
		Show: func(a commands.ShowArgs) (commands.Result, error) {
			open, err := s.List(ctx, ViewOpen)
			if err != nil {
				return commands.Result{}, err
			}
			now := s.calc.Now()
			lines := make([]string, 0, len(open))
			for i, task := range open {
				switch {
				case a.Subject == commands.ShowDue && !task.HasDueDate():
					continue
				case a.Subject == commands.ShowOverdue && !task.IsOverdue(now):
					continue
				}
				lines = append(lines, FormatTask(i+1, task, now, loc))
			}
			return commands.Result{
				Message: fmt.Sprintf("%d %s task(s)", len(lines), a.Subject),
				Lines:   lines,
			}, nil
		},
	}
}

// FormatTask renders one listing line; pos is the index Resolve accepts and
// overdue tasks are marked with "!".
func FormatTask(pos int, task model.Task, now time.Time, loc *time.Location) string {
	mark := " "
	if task.IsOverdue(now) {
		mark = "!"
	}
	return fmt.Sprintf("%s %d. %s | %s", mark, pos, task.Title, FormatDue(task.DueDate, loc))
}
