package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus mirrors the invoice status enum at the persistence layer.
type InvoiceStatus string

const (
	Unpaid InvoiceStatus = "unpaid"
	Paid   InvoiceStatus = "paid"
)

// Invoice represents a row in the invoices table.
type Invoice struct {
	InvoiceID   string          `db:"invoice_id"`
	OwnerID     string          `db:"owner_id"`
	ClientID    string          `db:"client_id"`
	Amount      decimal.Decimal `db:"amount"`
	DueDate     time.Time       `db:"due_date"`
	Status      InvoiceStatus   `db:"status"`
	IsRecurring bool            `db:"is_recurring"`
	Frequency   string          `db:"frequency"`
	NextRunDate *time.Time      `db:"next_run_date"` // Nullable; set iff is_recurring
	AuditFields
}

// LineItem represents a row in the invoice_line_items table.
type LineItem struct {
	LineItemID  string          `db:"line_item_id"`
	InvoiceID   string          `db:"invoice_id"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	ProductID   *string         `db:"product_id"` // Nullable
}
