package repositories

import (
	"context"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
)

// TaskReader defines read operations for task data
type TaskReader interface {
	// FindTaskByID retrieves a task with its comments, scoped to its owner.
	FindTaskByID(ctx context.Context, ownerID, taskID string) (*domain.Task, error)

	// ListTasksByOwner retrieves all tasks belonging to a user.
	ListTasksByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
}

// TaskWriter defines write operations for task data
type TaskWriter interface {
	// SaveTask persists a new task.
	SaveTask(ctx context.Context, task domain.Task) error

	// UpdateTask updates an existing task.
	UpdateTask(ctx context.Context, task domain.Task) error

	// SaveTaskComment appends a comment to a task. Ownership of the task is
	// checked by the caller before the insert.
	SaveTaskComment(ctx context.Context, comment domain.TaskComment) error

	// DeleteTask removes a task, scoped to its owner. Comments go with it.
	DeleteTask(ctx context.Context, ownerID, taskID string) error
}

// TaskRepositoryFacade combines all task-related repository interfaces
type TaskRepositoryFacade interface {
	TaskReader
	TaskWriter
}
