package dto

import (
	"time"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to create a new expense.
// Date defaults to the current time when absent.
type CreateExpenseRequest struct {
	Description string                 `json:"description" binding:"required"`
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	Category    domain.ExpenseCategory `json:"category" binding:"required,oneof=Office Software Marketing Personnel Utilities Other"`
	Date        *time.Time             `json:"date"`
	IsRecurring bool                   `json:"isRecurring"`
	Frequency   domain.Frequency       `json:"frequency" binding:"omitempty,oneof=weekly monthly yearly"`
}

// UpdateExpenseRequest defines the data allowed for updating an expense.
type UpdateExpenseRequest struct {
	Description *string                 `json:"description"`
	Amount      *decimal.Decimal        `json:"amount"`
	Category    *domain.ExpenseCategory `json:"category" binding:"omitempty,oneof=Office Software Marketing Personnel Utilities Other"`
	Date        *time.Time              `json:"date"`
	IsRecurring *bool                   `json:"isRecurring"`
	Frequency   *domain.Frequency       `json:"frequency" binding:"omitempty,oneof=weekly monthly yearly"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID   string                 `json:"expenseID"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	Category    domain.ExpenseCategory `json:"category"`
	Date        time.Time              `json:"date"`
	IsRecurring bool                   `json:"isRecurring"`
	Frequency   domain.Frequency       `json:"frequency"`
	NextRunDate *time.Time             `json:"nextRunDate,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		IsRecurring: e.IsRecurring,
		Frequency:   e.Frequency,
		NextRunDate: e.NextRunDate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.LastUpdatedAt,
	}
}

// ToListExpenseResponse converts a slice of domain.Expense to ExpenseResponse DTOs
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}
