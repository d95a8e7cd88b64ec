package domain

import "time"

// TaskStatus indicates the progress of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
)

// TaskComment is a note left on a task by its owner.
type TaskComment struct {
	CommentID string    `json:"commentID"` // Primary Key (e.g., UUID)
	TaskID    string    `json:"taskID"`    // FK -> tasks.task_id
	AuthorID  string    `json:"authorID"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Task represents a unit of work, optionally tied to a client.
type Task struct {
	TaskID      string        `json:"taskID"`             // Primary Key (e.g., UUID)
	OwnerID     string        `json:"ownerID"`            // FK -> users.user_id (NON-NULL)
	ClientID    *string       `json:"clientID,omitempty"` // Optional client reference
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      TaskStatus    `json:"status"` // Default: pending
	DueDate     *time.Time    `json:"dueDate,omitempty"`
	Comments    []TaskComment `json:"comments"`
	AuditFields
}
