package repositories

import (
	"context"
	"time"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its line items, scoped to its owner.
	FindInvoiceByID(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByOwner retrieves all invoices (with line items) belonging to a user.
	ListInvoicesByOwner(ctx context.Context, ownerID string) ([]domain.Invoice, error)

	// ListDueRecurringInvoices retrieves a bounded batch of recurring invoices
	// whose nextRunDate has reached asOf, using token-based keyset pagination.
	// It returns the invoices (with line items), a token for the next batch,
	// and an error. A nil token means the backlog is exhausted.
	ListDueRecurringInvoices(ctx context.Context, asOf time.Time, limit int, nextToken *string) ([]domain.Invoice, *string, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists an invoice and its line items, decrementing product
	// stock for every entry of stockProductIDs, all within one database
	// transaction. A product with no stock left aborts the whole transaction
	// with an apperrors.StockExhaustedError: no invoice row, no line items and
	// no stock change survive.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, stockProductIDs []string) error

	// SaveGeneratedInvoice persists a generated (non-recurring) copy and
	// advances the source invoice's nextRunDate within one database
	// transaction, so a crash can never produce a duplicate for the period.
	SaveGeneratedInvoice(ctx context.Context, generated domain.Invoice, sourceInvoiceID string, nextRunDate time.Time) error

	// UpdateInvoice updates mutable invoice fields (status, due date, amount,
	// recurring series). Line items are immutable after creation.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// DeleteInvoice removes an invoice and its line items, scoped to its
	// owner. Stock consumed by the invoice is not restored.
	DeleteInvoice(ctx context.Context, ownerID, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
