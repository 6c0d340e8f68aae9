package repository

import (
	"context"

	"github.com/martijn/todolist/internal/core/domain"
)

// TaskRepository persists tasks. Writes are scoped to the owning user so a
// mismatched userID affects no rows.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error)
	SetCompleted(ctx context.Context, id, userID int64, completed bool) error
	Delete(ctx context.Context, id, userID int64) error
}
