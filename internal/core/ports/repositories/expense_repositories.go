package repositories

import (
	"context"
	"time"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense by ID, scoped to its owner.
	FindExpenseByID(ctx context.Context, ownerID, expenseID string) (*domain.Expense, error)

	// ListExpensesByOwner retrieves all expenses belonging to a user.
	ListExpensesByOwner(ctx context.Context, ownerID string) ([]domain.Expense, error)

	// ListDueRecurringExpenses retrieves a bounded batch of recurring expenses
	// whose nextRunDate has reached asOf, using token-based keyset pagination.
	ListDueRecurringExpenses(ctx context.Context, asOf time.Time, limit int, nextToken *string) ([]domain.Expense, *string, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// SaveGeneratedExpense persists a generated (non-recurring) copy and
	// advances the source expense's nextRunDate within one database transaction.
	SaveGeneratedExpense(ctx context.Context, generated domain.Expense, sourceExpenseID string, nextRunDate time.Time) error

	// UpdateExpense updates an existing expense.
	UpdateExpense(ctx context.Context, expense domain.Expense) error

	// DeleteExpense removes an expense, scoped to its owner.
	DeleteExpense(ctx context.Context, ownerID, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
