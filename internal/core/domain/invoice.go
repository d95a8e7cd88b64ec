package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid InvoiceStatus = "unpaid"
	InvoicePaid   InvoiceStatus = "paid"
)

// LineItem is one entry in an invoice's item list. A line item that carries a
// product reference represents exactly one unit consumed from that product's
// stock; there is no quantity field.
type LineItem struct {
	LineItemID  string          `json:"lineItemID"` // Primary Key (e.g., UUID)
	InvoiceID   string          `json:"invoiceID"`  // FK -> invoices.invoice_id
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ProductID   *string         `json:"productID,omitempty"` // Optional FK -> products.product_id
}

// Invoice represents a billing document issued to a client.
type Invoice struct {
	InvoiceID string          `json:"invoiceID"` // Primary Key (e.g., UUID)
	OwnerID   string          `json:"ownerID"`   // FK -> users.user_id (NON-NULL)
	ClientID  string          `json:"clientID"`  // FK -> clients.client_id (NON-NULL)
	Amount    decimal.Decimal `json:"amount"`
	DueDate   time.Time       `json:"dueDate"`
	Status    InvoiceStatus   `json:"status"` // Default: unpaid
	Items     []LineItem      `json:"items"`
	RecurringSeries
	AuditFields
}
