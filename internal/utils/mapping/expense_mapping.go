package mapping

import (
	"github.com/bizopshq/bizops_backend/internal/core/domain"
	"github.com/bizopshq/bizops_backend/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		OwnerID:     d.OwnerID,
		Description: d.Description,
		Amount:      d.Amount,
		Category:    string(d.Category),
		Date:        d.Date,
		IsRecurring: d.IsRecurring,
		Frequency:   string(d.Frequency),
		NextRunDate: d.NextRunDate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		OwnerID:     m.OwnerID,
		Description: m.Description,
		Amount:      m.Amount,
		Category:    domain.ExpenseCategory(m.Category),
		Date:        m.Date,
		RecurringSeries: domain.RecurringSeries{
			IsRecurring: m.IsRecurring,
			Frequency:   domain.Frequency(m.Frequency),
			NextRunDate: m.NextRunDate,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to a slice of domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}
