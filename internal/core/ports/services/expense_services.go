package services

import (
	"context"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
	"github.com/bizopshq/bizops_backend/internal/dto"
)

// ExpenseSvcFacade defines the operations offered for managing expenses.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, ownerID string, req dto.CreateExpenseRequest) (*domain.Expense, error)
	GetExpenseByID(ctx context.Context, ownerID, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, ownerID string) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, ownerID, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, ownerID, expenseID string) error
}
