package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizopshq/bizops_backend/internal/apperrors"
	"github.com/bizopshq/bizops_backend/internal/core/domain"
	portsrepo "github.com/bizopshq/bizops_backend/internal/core/ports/repositories"
	portssvc "github.com/bizopshq/bizops_backend/internal/core/ports/services"
	"github.com/bizopshq/bizops_backend/internal/dto"
	"github.com/bizopshq/bizops_backend/internal/middleware"
	"github.com/bizopshq/bizops_backend/internal/utils/recurrence"
)

// expenseService provides expense management operations.
type expenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	now         func() time.Time
}

// ExpenseServiceOption is a functional option for configuring the expense service.
type ExpenseServiceOption func(*expenseService)

// WithExpenseClock overrides the expense service's time source, mainly for tests.
func WithExpenseClock(now func() time.Time) ExpenseServiceOption {
	return func(s *expenseService) {
		s.now = now
	}
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, options ...ExpenseServiceOption) portssvc.ExpenseSvcFacade {
	svc := &expenseService{
		expenseRepo: expenseRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense creates a new expense for the requesting user. The date
// defaults to the current time; a recurring expense gets its nextRunDate
// anchored one period after that date.
func (s *expenseService) CreateExpense(ctx context.Context, ownerID string, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	if req.Description == "" || req.Category == "" {
		return nil, fmt.Errorf("%w: description and category are required", apperrors.ErrValidation)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := s.now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	frequency := req.Frequency.Normalize()
	series := domain.RecurringSeries{
		IsRecurring: req.IsRecurring,
		Frequency:   frequency,
	}
	if req.IsRecurring {
		next := recurrence.NextDate(date, frequency)
		series.NextRunDate = &next
	}

	expense := domain.Expense{
		ExpenseID:       uuid.NewString(),
		OwnerID:         ownerID,
		Description:     req.Description,
		Amount:          req.Amount,
		Category:        req.Category,
		Date:            date,
		RecurringSeries: series,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to save expense", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}
	return &expense, nil
}

// GetExpenseByID retrieves an expense owned by the requesting user.
func (s *expenseService) GetExpenseByID(ctx context.Context, ownerID, expenseID string) (*domain.Expense, error) {
	return s.expenseRepo.FindExpenseByID(ctx, ownerID, expenseID)
}

// ListExpenses lists all expenses of the requesting user.
func (s *expenseService) ListExpenses(ctx context.Context, ownerID string) ([]domain.Expense, error) {
	return s.expenseRepo.ListExpensesByOwner(ctx, ownerID)
}

// UpdateExpense applies the provided changes to an expense owned by the requesting user.
func (s *expenseService) UpdateExpense(ctx context.Context, ownerID, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, ownerID, expenseID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}
	if req.Frequency != nil {
		expense.Frequency = req.Frequency.Normalize()
	}
	if req.IsRecurring != nil {
		expense.IsRecurring = *req.IsRecurring
	}
	if expense.IsRecurring {
		expense.Frequency = expense.Frequency.Normalize()
		if expense.NextRunDate == nil {
			next := recurrence.NextDate(expense.Date, expense.Frequency)
			expense.NextRunDate = &next
		}
	} else {
		expense.NextRunDate = nil
	}
	expense.LastUpdatedAt = s.now()
	expense.LastUpdatedBy = ownerID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		return nil, fmt.Errorf("failed to update expense %s: %w", expenseID, err)
	}
	return expense, nil
}

// DeleteExpense removes an expense owned by the requesting user.
func (s *expenseService) DeleteExpense(ctx context.Context, ownerID, expenseID string) error {
	return s.expenseRepo.DeleteExpense(ctx, ownerID, expenseID)
}
