package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/bizopshq/bizops_backend/internal/apperrors"
	"github.com/bizopshq/bizops_backend/internal/core/domain"
	portsrepo "github.com/bizopshq/bizops_backend/internal/core/ports/repositories"
	"github.com/bizopshq/bizops_backend/internal/models"
	"github.com/bizopshq/bizops_backend/internal/utils/mapping"
	"github.com/bizopshq/bizops_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expenseColumns = `expense_id, owner_id, description, amount, category, expense_date, is_recurring, frequency, next_run_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.OwnerID,
		&m.Description,
		&m.Amount,
		&m.Category,
		&m.Date,
		&m.IsRecurring,
		&m.Frequency,
		&m.NextRunDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertExpenseTx(ctx context.Context, tx pgx.Tx, m models.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.ExpenseID,
		m.OwnerID,
		m.Description,
		m.Amount,
		m.Category,
		m.Date,
		m.IsRecurring,
		m.Frequency,
		m.NextRunDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return err
}

// SaveExpense persists a new expense.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
		m.OwnerID,
		m.Description,
		m.Amount,
		m.Category,
		m.Date,
		m.IsRecurring,
		m.Frequency,
		m.NextRunDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert expense "+m.ExpenseID, err)
	}
	return nil
}

// SaveGeneratedExpense persists a generated copy and advances the source
// expense's schedule in the same transaction.
func (r *PgxExpenseRepository) SaveGeneratedExpense(ctx context.Context, generated domain.Expense, sourceExpenseID string, nextRunDate time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction for generated expense", err)
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := insertExpenseTx(ctx, tx, mapping.ToModelExpense(generated)); err != nil {
		return apperrors.NewAppError(500, "failed to insert generated expense "+generated.ExpenseID, err)
	}

	advance := `
		UPDATE expenses
		SET next_run_date = $3, last_updated_at = $4, last_updated_by = $5
		WHERE expense_id = $1 AND owner_id = $2 AND is_recurring = TRUE;
	`
	tag, err := tx.Exec(ctx, advance, sourceExpenseID, generated.OwnerID, nextRunDate, generated.CreatedAt, generated.CreatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to advance schedule for expense "+sourceExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit generated expense", err)
	}
	return nil
}

// FindExpenseByID retrieves an expense by ID, scoped to its owner.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, ownerID, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1 AND owner_id = $2;`
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find expense by ID "+expenseID, err)
	}

	domainExpense := mapping.ToDomainExpense(m)
	return &domainExpense, nil
}

// ListExpensesByOwner retrieves all expenses belonging to a user.
func (r *PgxExpenseRepository) ListExpensesByOwner(ctx context.Context, ownerID string) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE owner_id = $1 ORDER BY expense_date DESC, created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses for owner "+ownerID, err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		expenses = append(expenses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}

	return mapping.ToDomainExpenseSlice(expenses), nil
}

// ListDueRecurringExpenses retrieves a bounded batch of recurring expenses
// whose next_run_date has reached asOf, with keyset pagination on
// (next_run_date, expense_id).
func (r *PgxExpenseRepository) ListDueRecurringExpenses(ctx context.Context, asOf time.Time, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	args := []any{asOf, limit + 1}
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE is_recurring = TRUE AND next_run_date IS NOT NULL AND next_run_date <= $1
	`
	if nextToken != nil {
		tokenDate, tokenID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` AND (next_run_date, expense_id) > ($3, $4)`
		args = append(args, tokenDate, tokenID)
	}
	query += ` ORDER BY next_run_date ASC, expense_id ASC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query due recurring expenses", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		expenses = append(expenses, mapping.ToDomainExpense(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}

	var token *string
	if len(expenses) > limit {
		expenses = expenses[:limit]
		last := expenses[len(expenses)-1]
		t := pagination.EncodeToken(*last.NextRunDate, last.ExpenseID)
		token = &t
	}
	return expenses, token, nil
}

// UpdateExpense updates an existing expense.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses
		SET description = $3, amount = $4, category = $5, expense_date = $6,
		    is_recurring = $7, frequency = $8, next_run_date = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE expense_id = $1 AND owner_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
		m.OwnerID,
		m.Description,
		m.Amount,
		m.Category,
		m.Date,
		m.IsRecurring,
		m.Frequency,
		m.NextRunDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update expense "+m.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpense removes an expense, scoped to its owner.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, ownerID, expenseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1 AND owner_id = $2;`, expenseID, ownerID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete expense "+expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
