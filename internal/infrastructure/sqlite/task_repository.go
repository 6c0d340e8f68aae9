package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/martijn/todolist/internal/core/domain"
	"github.com/martijn/todolist/internal/core/repository"
)

type taskRepository struct {
	db *DB
}

func NewTaskRepository(db *DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO task (title, completed, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		task.Title,
		task.Completed,
		task.UserID,
		task.CreatedAt.UTC(),
		task.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get task id: %w", err)
	}
	task.ID = id
	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := `
		SELECT id, title, completed, user_id, created_at, updated_at
		FROM task
		WHERE id = ?
	`
	var task domain.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

func (r *taskRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	query := `
		SELECT id, title, completed, user_id, created_at, updated_at
		FROM task
		WHERE user_id = ?
		ORDER BY id
	`
	tasks := []*domain.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) SetCompleted(ctx context.Context, id, userID int64, completed bool) error {
	query := `
		UPDATE task
		SET completed = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`
	if _, err := r.db.ExecContext(ctx, query, completed, time.Now().UTC(), id, userID); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM task WHERE id = ? AND user_id = ?`
	if _, err := r.db.ExecContext(ctx, query, id, userID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
