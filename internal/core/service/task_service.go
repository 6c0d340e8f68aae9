package service

import (
	"context"
	"errors"

	"github.com/martijn/todolist/internal/core/domain"
	"github.com/martijn/todolist/internal/core/repository"
	"github.com/martijn/todolist/internal/metrics"
)

// TaskService runs task operations on behalf of an authenticated user.
// Operations on a task owned by someone else return without effect and
// without an error, so callers cannot probe for other users' tasks.
type TaskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// ListForUser returns the user's tasks in insertion order
func (s *TaskService) ListForUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return s.taskRepo.ListByUser(ctx, userID)
}

// Create adds a task with the title exactly as given. An empty title creates
// nothing and returns nil, nil.
func (s *TaskService) Create(ctx context.Context, title string, userID int64) (*domain.Task, error) {
	if title == "" {
		metrics.TaskOperationsTotal.WithLabelValues("create", "ignored").Inc()
		return nil, nil
	}

	task := domain.NewTask(title, userID)
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	metrics.TaskOperationsTotal.WithLabelValues("create", "ok").Inc()
	return task, nil
}

// ToggleComplete flips the completion flag of an owned task
func (s *TaskService) ToggleComplete(ctx context.Context, id, actingUserID int64) (*domain.Task, error) {
	task, err := s.find(ctx, "toggle", id)
	if err != nil {
		return nil, err
	}

	if !task.OwnedBy(actingUserID) {
		metrics.TaskOperationsTotal.WithLabelValues("toggle", "not_owner").Inc()
		return task, nil
	}

	completed := !task.Completed
	if err := s.taskRepo.SetCompleted(ctx, task.ID, actingUserID, completed); err != nil {
		return nil, err
	}
	task.Completed = completed

	metrics.TaskOperationsTotal.WithLabelValues("toggle", "ok").Inc()
	return task, nil
}

// Delete permanently removes an owned task
func (s *TaskService) Delete(ctx context.Context, id, actingUserID int64) error {
	task, err := s.find(ctx, "delete", id)
	if err != nil {
		return err
	}

	if !task.OwnedBy(actingUserID) {
		metrics.TaskOperationsTotal.WithLabelValues("delete", "not_owner").Inc()
		return nil
	}

	if err := s.taskRepo.Delete(ctx, task.ID, actingUserID); err != nil {
		return err
	}

	metrics.TaskOperationsTotal.WithLabelValues("delete", "ok").Inc()
	return nil
}

func (s *TaskService) find(ctx context.Context, operation string, id int64) (*domain.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		metrics.TaskOperationsTotal.WithLabelValues(operation, "not_found").Inc()
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}
