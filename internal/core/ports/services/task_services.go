package services

import (
	"context"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
	"github.com/bizopshq/bizops_backend/internal/dto"
)

// TaskSvcFacade defines the operations offered for managing tasks.
type TaskSvcFacade interface {
	CreateTask(ctx context.Context, ownerID string, req dto.CreateTaskRequest) (*domain.Task, error)
	GetTaskByID(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID string, req dto.UpdateTaskRequest) (*domain.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
	AddTaskComment(ctx context.Context, ownerID, taskID string, req dto.AddTaskCommentRequest) (*domain.Task, error)
}
