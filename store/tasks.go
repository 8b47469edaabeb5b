package store

import (
	"context"
	"fmt"
	"strings"

	"kalma/models"
)

// AddTask inserts an open task for owner. A blank name is ignored and
// reported as added == false.
func (s *Store) AddTask(ctx context.Context, owner, name, category, dueDate string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = models.DefaultCategory
	}

	_, err := s.db.ExecContext(ctx,
		s.q(`INSERT INTO tasks (user_email, name, category, due_date, completed) VALUES (?, ?, ?, ?, ?)`),
		owner, name, category, strings.TrimSpace(dueDate), false,
	)
	if err != nil {
		return false, fmt.Errorf("insert task: %w", err)
	}
	return true, nil
}

// ListTasks returns owner's tasks, newest first
func (s *Store) ListTasks(ctx context.Context, owner string) ([]models.Task, error) {
	out := make([]models.Task, 0)
	err := s.db.SelectContext(ctx, &out,
		s.q(`SELECT id, user_email, name, category, due_date, completed
		 FROM tasks WHERE user_email = ? ORDER BY id DESC`),
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

// CompleteTask marks the task done. Only rows owned by owner are touched;
// an unknown or foreign id changes nothing.
func (s *Store) CompleteTask(ctx context.Context, id int64, owner string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		s.q(`UPDATE tasks SET completed = ? WHERE id = ? AND user_email = ?`),
		true, id, owner,
	)
	if err != nil {
		return false, fmt.Errorf("complete task: %w", err)
	}
	return affected(res)
}

// DeleteTask removes the task if owner owns it
func (s *Store) DeleteTask(ctx context.Context, id int64, owner string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		s.q(`DELETE FROM tasks WHERE id = ? AND user_email = ?`),
		id, owner,
	)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return affected(res)
}

type rowsAffecter interface {
	RowsAffected() (int64, error)
}

func affected(res rowsAffecter) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
