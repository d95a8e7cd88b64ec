package pgsql

import (
	"context"
	"errors"

	"github.com/bizopshq/bizops_backend/internal/apperrors"
	"github.com/bizopshq/bizops_backend/internal/core/domain"
	portsrepo "github.com/bizopshq/bizops_backend/internal/core/ports/repositories"
	"github.com/bizopshq/bizops_backend/internal/models"
	"github.com/bizopshq/bizops_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `task_id, owner_id, client_id, title, description, status, due_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxTaskRepository struct {
	BaseRepository
}

// newPgxTaskRepository creates a new repository for task data.
func newPgxTaskRepository(pool *pgxpool.Pool) portsrepo.TaskRepositoryFacade {
	return &PgxTaskRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TaskRepositoryFacade = (*PgxTaskRepository)(nil)

func scanTask(row pgx.Row) (models.Task, error) {
	var m models.Task
	err := row.Scan(
		&m.TaskID,
		&m.OwnerID,
		&m.ClientID,
		&m.Title,
		&m.Description,
		&m.Status,
		&m.DueDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTask persists a new task.
func (r *PgxTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	m := mapping.ToModelTask(task)
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TaskID,
		m.OwnerID,
		m.ClientID,
		m.Title,
		m.Description,
		m.Status,
		m.DueDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert task "+m.TaskID, err)
	}
	return nil
}

func (r *PgxTaskRepository) loadComments(ctx context.Context, taskIDs []string) (map[string][]domain.TaskComment, error) {
	commentsByTask := make(map[string][]domain.TaskComment, len(taskIDs))
	if len(taskIDs) == 0 {
		return commentsByTask, nil
	}
	query := `
		SELECT comment_id, task_id, author_id, comment_text, created_at
		FROM task_comments
		WHERE task_id = ANY($1)
		ORDER BY created_at ASC, comment_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, taskIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query task comments", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.TaskComment
		if err := rows.Scan(&m.CommentID, &m.TaskID, &m.AuthorID, &m.Text, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan task comment row", err)
		}
		commentsByTask[m.TaskID] = append(commentsByTask[m.TaskID], mapping.ToDomainTaskComment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating task comment rows", err)
	}
	return commentsByTask, nil
}

// FindTaskByID retrieves a task with its comments, scoped to its owner.
func (r *PgxTaskRepository) FindTaskByID(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = $1 AND owner_id = $2;`
	m, err := scanTask(r.Pool.QueryRow(ctx, query, taskID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find task by ID "+taskID, err)
	}

	comments, err := r.loadComments(ctx, []string{m.TaskID})
	if err != nil {
		return nil, err
	}
	task := mapping.ToDomainTask(m)
	task.Comments = comments[m.TaskID]
	return &task, nil
}

// ListTasksByOwner retrieves all tasks (with comments) belonging to a user.
func (r *PgxTaskRepository) ListTasksByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tasks for owner "+ownerID, err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	taskIDs := []string{}
	for rows.Next() {
		m, err := scanTask(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan task row", err)
		}
		tasks = append(tasks, mapping.ToDomainTask(m))
		taskIDs = append(taskIDs, m.TaskID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating task rows", err)
	}

	commentsByTask, err := r.loadComments(ctx, taskIDs)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].Comments = commentsByTask[tasks[i].TaskID]
	}
	return tasks, nil
}

// UpdateTask updates an existing task. Comments are append-only and not
// touched here.
func (r *PgxTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	m := mapping.ToModelTask(task)
	query := `
		UPDATE tasks
		SET client_id = $3, title = $4, description = $5, status = $6,
		    due_date = $7, last_updated_at = $8, last_updated_by = $9
		WHERE task_id = $1 AND owner_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TaskID,
		m.OwnerID,
		m.ClientID,
		m.Title,
		m.Description,
		m.Status,
		m.DueDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update task "+m.TaskID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveTaskComment appends a comment to a task.
func (r *PgxTaskRepository) SaveTaskComment(ctx context.Context, comment domain.TaskComment) error {
	m := mapping.ToModelTaskComment(comment)
	query := `
		INSERT INTO task_comments (comment_id, task_id, author_id, comment_text, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query, m.CommentID, m.TaskID, m.AuthorID, m.Text, m.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert comment for task "+m.TaskID, err)
	}
	return nil
}

// DeleteTask removes a task, scoped to its owner. Comments go with it through
// the ON DELETE CASCADE constraint.
func (r *PgxTaskRepository) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1 AND owner_id = $2;`, taskID, ownerID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete task "+taskID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
