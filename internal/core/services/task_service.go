package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizopshq/bizops_backend/internal/apperrors"
	"github.com/bizopshq/bizops_backend/internal/core/domain"
	portsrepo "github.com/bizopshq/bizops_backend/internal/core/ports/repositories"
	portssvc "github.com/bizopshq/bizops_backend/internal/core/ports/services"
	"github.com/bizopshq/bizops_backend/internal/dto"
	"github.com/bizopshq/bizops_backend/internal/middleware"
)

// taskService provides task management operations.
type taskService struct {
	taskRepo portsrepo.TaskRepositoryFacade
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo portsrepo.TaskRepositoryFacade) portssvc.TaskSvcFacade {
	return &taskService{taskRepo: taskRepo}
}

var _ portssvc.TaskSvcFacade = (*taskService)(nil)

// CreateTask creates a new task for the requesting user. The status defaults
// to pending when not provided.
func (s *taskService) CreateTask(ctx context.Context, ownerID string, req dto.CreateTaskRequest) (*domain.Task, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}

	status := req.Status
	if status == "" {
		status = domain.TaskPending
	}

	now := time.Now().UTC()
	task := domain.Task{
		TaskID:      uuid.NewString(),
		OwnerID:     ownerID,
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		DueDate:     req.DueDate,
		Comments:    []domain.TaskComment{},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to save task", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	return &task, nil
}

// GetTaskByID retrieves a task owned by the requesting user.
func (s *taskService) GetTaskByID(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	return s.taskRepo.FindTaskByID(ctx, ownerID, taskID)
}

// ListTasks lists all tasks of the requesting user.
func (s *taskService) ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.taskRepo.ListTasksByOwner(ctx, ownerID)
}

// UpdateTask applies the provided changes to a task owned by the requesting user.
func (s *taskService) UpdateTask(ctx context.Context, ownerID, taskID string, req dto.UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.ClientID != nil {
		task.ClientID = req.ClientID
	}
	task.LastUpdatedAt = time.Now().UTC()
	task.LastUpdatedBy = ownerID

	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", taskID, err)
	}
	return task, nil
}

// DeleteTask removes a task owned by the requesting user.
func (s *taskService) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	return s.taskRepo.DeleteTask(ctx, ownerID, taskID)
}

// AddTaskComment appends a comment to a task owned by the requesting user and
// returns the task with the new comment included.
func (s *taskService) AddTaskComment(ctx context.Context, ownerID, taskID string, req dto.AddTaskCommentRequest) (*domain.Task, error) {
	if req.Text == "" {
		return nil, fmt.Errorf("%w: comment text is required", apperrors.ErrValidation)
	}

	task, err := s.taskRepo.FindTaskByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	comment := domain.TaskComment{
		CommentID: uuid.NewString(),
		TaskID:    task.TaskID,
		AuthorID:  ownerID,
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.taskRepo.SaveTaskComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment on task %s: %w", taskID, err)
	}

	task.Comments = append(task.Comments, comment)
	return task, nil
}
