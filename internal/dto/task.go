package dto

import (
	"time"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
)

// CreateTaskRequest defines the data needed to create a new task.
type CreateTaskRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Status      domain.TaskStatus `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
	DueDate     *time.Time        `json:"dueDate"`
	ClientID    *string           `json:"client"`
}

// UpdateTaskRequest defines the data allowed for updating a task.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *domain.TaskStatus `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
	DueDate     *time.Time         `json:"dueDate"`
	ClientID    *string            `json:"client"`
}

// AddTaskCommentRequest defines the data needed to comment on a task.
type AddTaskCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// TaskCommentResponse defines the data returned for a task comment.
type TaskCommentResponse struct {
	CommentID string    `json:"commentID"`
	AuthorID  string    `json:"authorID"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskResponse defines the data returned for a task.
type TaskResponse struct {
	TaskID      string                `json:"taskID"`
	ClientID    *string               `json:"clientID,omitempty"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      domain.TaskStatus     `json:"status"`
	DueDate     *time.Time            `json:"dueDate,omitempty"`
	Comments    []TaskCommentResponse `json:"comments"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// ToTaskResponse converts a domain.Task to TaskResponse DTO
func ToTaskResponse(t *domain.Task) TaskResponse {
	comments := make([]TaskCommentResponse, len(t.Comments))
	for i, comment := range t.Comments {
		comments[i] = TaskCommentResponse{
			CommentID: comment.CommentID,
			AuthorID:  comment.AuthorID,
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
		}
	}
	return TaskResponse{
		TaskID:      t.TaskID,
		ClientID:    t.ClientID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
		Comments:    comments,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.LastUpdatedAt,
	}
}

// ToListTaskResponse converts a slice of domain.Task to TaskResponse DTOs
func ToListTaskResponse(tasks []domain.Task) []TaskResponse {
	res := make([]TaskResponse, len(tasks))
	for i := range tasks {
		res[i] = ToTaskResponse(&tasks[i])
	}
	return res
}
