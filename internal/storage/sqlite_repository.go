package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

const taskColumns = `id, title, notes, state, priority, due_date, hide_until, created_at, completed_at`

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the database at path and brings its schema up to date.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Notes, in.State, in.Priority, in.DueDate, in.HideUntil,
		mustTime(in.CreatedAt), nullTime(in.CompletedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, notes = ?, state = ?, priority = ?, due_date = ?, hide_until = ?, completed_at = ?
		WHERE id = ?`,
		in.Title, in.Notes, in.State, in.Priority, in.DueDate, in.HideUntil, nullTime(in.CompletedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// ListTasks orders tasks with a due date first, earliest due first, and
// falls back to creation order.
func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.State != "" {
		clauses = append(clauses, "state = ?")
		args = append(args, filter.State)
	}
	if filter.OnlyWithDueDate || filter.DueBefore > 0 {
		clauses = append(clauses, "due_date > 0")
	}
	if filter.DueBefore > 0 {
		clauses = append(clauses, "due_date < ?")
		args = append(args, filter.DueBefore)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY CASE WHEN due_date > 0 THEN 0 ELSE 1 END, due_date ASC, created_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	} else if offset > 0 {
		sql += " LIMIT -1"
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var created string
	var completed sql.NullString
	if err := s.Scan(&out.ID, &out.Title, &out.Notes, &out.State, &out.Priority, &out.DueDate, &out.HideUntil, &created, &completed); err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	completedAt, err := parseNullableTime(completed)
	if err != nil {
		return Task{}, err
	}
	out.CreatedAt = createdAt
	out.CompletedAt = completedAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
