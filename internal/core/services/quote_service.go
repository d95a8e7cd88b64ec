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
)

// quoteService provides quote management operations, including conversion of
// an accepted quote into an invoice. Conversion goes through the regular
// invoice creation path, so product-backed quote lines consume stock there
// and an out-of-stock product rejects the whole conversion.
type quoteService struct {
	quoteRepo  portsrepo.QuoteRepositoryFacade
	invoiceSvc portssvc.InvoiceSvcFacade
	now        func() time.Time
}

// QuoteServiceOption is a functional option for configuring the quote service.
type QuoteServiceOption func(*quoteService)

// WithQuoteClock overrides the quote service's time source, mainly for tests.
func WithQuoteClock(now func() time.Time) QuoteServiceOption {
	return func(s *quoteService) {
		s.now = now
	}
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(quoteRepo portsrepo.QuoteRepositoryFacade, invoiceSvc portssvc.InvoiceSvcFacade, options ...QuoteServiceOption) portssvc.QuoteSvcFacade {
	svc := &quoteService{
		quoteRepo:  quoteRepo,
		invoiceSvc: invoiceSvc,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.QuoteSvcFacade = (*quoteService)(nil)

// CreateQuote creates a new pending quote for the requesting user.
func (s *quoteService) CreateQuote(ctx context.Context, ownerID string, req dto.CreateQuoteRequest) (*domain.Quote, error) {
	if req.ClientID == "" || req.ValidUntil.IsZero() {
		return nil, fmt.Errorf("%w: client and validUntil are required", apperrors.ErrValidation)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := s.now()
	quoteID := uuid.NewString()

	items := make([]domain.QuoteLineItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.QuoteLineItem{
			QuoteLineItemID: uuid.NewString(),
			QuoteID:         quoteID,
			Description:     item.Description,
			Price:           item.Price,
			ProductID:       item.ProductID,
		}
	}

	quote := domain.Quote{
		QuoteID:    quoteID,
		OwnerID:    ownerID,
		ClientID:   req.ClientID,
		Amount:     req.Amount,
		ValidUntil: req.ValidUntil,
		Status:     domain.QuotePending,
		Items:      items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.quoteRepo.SaveQuote(ctx, quote); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to save quote", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}
	return &quote, nil
}

// GetQuoteByID retrieves a quote owned by the requesting user.
func (s *quoteService) GetQuoteByID(ctx context.Context, ownerID, quoteID string) (*domain.Quote, error) {
	return s.quoteRepo.FindQuoteByID(ctx, ownerID, quoteID)
}

// ListQuotes lists all quotes of the requesting user.
func (s *quoteService) ListQuotes(ctx context.Context, ownerID string) ([]domain.Quote, error) {
	return s.quoteRepo.ListQuotesByOwner(ctx, ownerID)
}

// UpdateQuote applies the provided changes to a quote owned by the requesting user.
func (s *quoteService) UpdateQuote(ctx context.Context, ownerID, quoteID string, req dto.UpdateQuoteRequest) (*domain.Quote, error) {
	quote, err := s.quoteRepo.FindQuoteByID(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		quote.Amount = *req.Amount
	}
	if req.ValidUntil != nil {
		quote.ValidUntil = *req.ValidUntil
	}
	if req.Status != nil {
		quote.Status = *req.Status
	}
	quote.LastUpdatedAt = s.now()
	quote.LastUpdatedBy = ownerID

	if err := s.quoteRepo.UpdateQuote(ctx, *quote); err != nil {
		return nil, fmt.Errorf("failed to update quote %s: %w", quoteID, err)
	}
	return quote, nil
}

// DeleteQuote removes a quote owned by the requesting user.
func (s *quoteService) DeleteQuote(ctx context.Context, ownerID, quoteID string) error {
	return s.quoteRepo.DeleteQuote(ctx, ownerID, quoteID)
}

// ConvertQuoteToInvoice turns a pending quote into an unpaid invoice due 30
// days out, carrying over the client, amount and line items. The invoice goes
// through the regular creation path, so stock is consumed per product-backed
// line and an exhausted product rejects the conversion with the quote left
// untouched. An already accepted quote cannot convert a second time.
func (s *quoteService) ConvertQuoteToInvoice(ctx context.Context, ownerID, quoteID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	quote, err := s.quoteRepo.FindQuoteByID(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.Status == domain.QuoteAccepted {
		return nil, fmt.Errorf("%w: quote %s has already been converted", apperrors.ErrValidation, quoteID)
	}

	items := make([]dto.CreateLineItemRequest, len(quote.Items))
	for i, item := range quote.Items {
		items[i] = dto.CreateLineItemRequest{
			Description: item.Description,
			Price:       item.Price,
			ProductID:   item.ProductID,
		}
	}

	now := s.now()
	invoiceReq := dto.CreateInvoiceRequest{
		ClientID: quote.ClientID,
		Amount:   quote.Amount,
		DueDate:  now.Add(30 * 24 * time.Hour),
		Items:    items,
	}

	invoice, err := s.invoiceSvc.CreateInvoice(ctx, ownerID, invoiceReq)
	if err != nil {
		return nil, err
	}

	if err := s.quoteRepo.MarkQuoteAccepted(ctx, ownerID, quoteID, ownerID, now); err != nil {
		// The invoice exists; the quote status is the part that failed.
		logger.Error("Failed to mark quote accepted after conversion",
			slog.String("quote_id", quoteID),
			slog.String("invoice_id", invoice.InvoiceID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to mark quote %s accepted: %w", quoteID, err)
	}

	logger.Info("Quote converted to invoice",
		slog.String("quote_id", quoteID),
		slog.String("invoice_id", invoice.InvoiceID))
	return invoice, nil
}
