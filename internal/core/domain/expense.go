package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is the closed set of categories an expense can carry.
type ExpenseCategory string

const (
	CategoryOffice    ExpenseCategory = "Office"
	CategorySoftware  ExpenseCategory = "Software"
	CategoryMarketing ExpenseCategory = "Marketing"
	CategoryPersonnel ExpenseCategory = "Personnel"
	CategoryUtilities ExpenseCategory = "Utilities"
	CategoryOther     ExpenseCategory = "Other"
)

// Expense represents money a user spent, optionally on a recurring cadence.
type Expense struct {
	ExpenseID   string          `json:"expenseID"` // Primary Key (e.g., UUID)
	OwnerID     string          `json:"ownerID"`   // FK -> users.user_id (NON-NULL)
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	Date        time.Time       `json:"date"`
	RecurringSeries
	AuditFields
}
