package services

import (
	"context"
	"errors"
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

// invoiceService provides invoice operations, including the inventory side
// of invoice creation: every line item referencing a product consumes one
// unit of that product's stock, atomically with the invoice insert.
type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	productRepo portsrepo.ProductReader
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, productRepo portsrepo.ProductReader) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice validates the request, checks stock for all product-backed
// line items and persists the invoice together with the stock decrements in
// one storage transaction. The whole request is rejected when any referenced
// product has no stock left; a rejected request leaves no trace.
func (s *invoiceService) CreateInvoice(ctx context.Context, ownerID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ClientID == "" || req.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: client and dueDate are required", apperrors.ErrValidation)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	// Resolve every referenced product up front. Unresolvable references keep
	// their line item but have no stock effect.
	products, err := s.resolveProducts(ctx, ownerID, req.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	// One stock unit per line item, even when the same product appears on
	// several lines.
	stockProductIDs := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		if item.ProductID == nil {
			continue
		}
		product, found := products[*item.ProductID]
		if !found {
			continue
		}
		if product.StockQuantity < 1 {
			return nil, &apperrors.StockExhaustedError{ProductID: product.ProductID, ProductName: product.Name}
		}
		stockProductIDs = append(stockProductIDs, product.ProductID)
	}

	now := time.Now().UTC()
	invoiceID := uuid.NewString()

	items := make([]domain.LineItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.LineItem{
			LineItemID:  uuid.NewString(),
			InvoiceID:   invoiceID,
			Description: item.Description,
			Price:       item.Price,
			ProductID:   item.ProductID,
		}
	}

	frequency := req.Frequency.Normalize()
	series := domain.RecurringSeries{
		IsRecurring: req.IsRecurring,
		Frequency:   frequency,
	}
	if req.IsRecurring {
		// The schedule anchors at the due date: the first regeneration lands
		// one full period after it.
		next := recurrence.NextDate(req.DueDate, frequency)
		series.NextRunDate = &next
	}

	invoice := domain.Invoice{
		InvoiceID:       invoiceID,
		OwnerID:         ownerID,
		ClientID:        req.ClientID,
		Amount:          req.Amount,
		DueDate:         req.DueDate,
		Status:          domain.InvoiceUnpaid,
		Items:           items,
		RecurringSeries: series,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice, stockProductIDs); err != nil {
		// A concurrent request may have drained stock between the check above
		// and the conditional decrement; name the product before reporting.
		var stockErr *apperrors.StockExhaustedError
		if errors.As(err, &stockErr) {
			if product, found := products[stockErr.ProductID]; found {
				stockErr.ProductName = product.Name
			}
			logger.Warn("Invoice rejected: product out of stock",
				slog.String("product_id", stockErr.ProductID),
				slog.String("client_id", req.ClientID))
			return nil, stockErr
		}
		logger.Error("Failed to save invoice", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	return &invoice, nil
}

// resolveProducts fetches the products referenced by the request's line
// items, scoped to the owner. Missing products are absent from the result.
func (s *invoiceService) resolveProducts(ctx context.Context, ownerID string, items []dto.CreateLineItemRequest) (map[string]domain.Product, error) {
	productIDs := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.ProductID == nil || seen[*item.ProductID] {
			continue
		}
		seen[*item.ProductID] = true
		productIDs = append(productIDs, *item.ProductID)
	}
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}
	return s.productRepo.FindProductsByIDs(ctx, ownerID, productIDs)
}

// GetInvoiceByID retrieves an invoice owned by the requesting user.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, ownerID, invoiceID)
}

// ListInvoices lists all invoices of the requesting user.
func (s *invoiceService) ListInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	return s.invoiceRepo.ListInvoicesByOwner(ctx, ownerID)
}

// UpdateInvoice applies the provided changes to an invoice owned by the
// requesting user. Deleting or editing an invoice never restores stock.
func (s *invoiceService) UpdateInvoice(ctx context.Context, ownerID, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		invoice.Amount = *req.Amount
	}
	if req.DueDate != nil {
		invoice.DueDate = *req.DueDate
	}
	if req.Status != nil {
		invoice.Status = *req.Status
	}
	if req.Frequency != nil {
		invoice.Frequency = req.Frequency.Normalize()
	}
	if req.IsRecurring != nil {
		invoice.IsRecurring = *req.IsRecurring
	}
	if invoice.IsRecurring {
		invoice.Frequency = invoice.Frequency.Normalize()
		if invoice.NextRunDate == nil {
			next := recurrence.NextDate(invoice.DueDate, invoice.Frequency)
			invoice.NextRunDate = &next
		}
	} else {
		invoice.NextRunDate = nil
	}
	invoice.LastUpdatedAt = time.Now().UTC()
	invoice.LastUpdatedBy = ownerID

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

// DeleteInvoice removes an invoice owned by the requesting user.
// Stock consumed by the invoice stays consumed.
func (s *invoiceService) DeleteInvoice(ctx context.Context, ownerID, invoiceID string) error {
	return s.invoiceRepo.DeleteInvoice(ctx, ownerID, invoiceID)
}
