package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a row in the expenses table.
type Expense struct {
	ExpenseID   string          `db:"expense_id"`
	OwnerID     string          `db:"owner_id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Category    string          `db:"category"`
	Date        time.Time       `db:"expense_date"`
	IsRecurring bool            `db:"is_recurring"`
	Frequency   string          `db:"frequency"`
	NextRunDate *time.Time      `db:"next_run_date"` // Nullable; set iff is_recurring
	AuditFields
}
