package services

import (
	"context"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
	"github.com/bizopshq/bizops_backend/internal/dto"
)

// InvoiceSvcFacade defines the operations offered for managing invoices.
// CreateInvoice also drives the inventory ledger: line items carrying a
// product reference consume one unit of stock each, atomically with the
// invoice insert.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, ownerID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error)
	GetInvoiceByID(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error)
	UpdateInvoice(ctx context.Context, ownerID, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, ownerID, invoiceID string) error
}
