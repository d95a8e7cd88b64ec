package models

import "time"

// Task represents a row in the tasks table.
type Task struct {
	TaskID      string     `db:"task_id"`
	OwnerID     string     `db:"owner_id"`
	ClientID    *string    `db:"client_id"` // Nullable
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Status      string     `db:"status"`
	DueDate     *time.Time `db:"due_date"` // Nullable
	AuditFields
}

// TaskComment represents a row in the task_comments table.
type TaskComment struct {
	CommentID string    `db:"comment_id"`
	TaskID    string    `db:"task_id"`
	AuthorID  string    `db:"author_id"`
	Text      string    `db:"comment_text"`
	CreatedAt time.Time `db:"created_at"`
}
