package services

import (
	"context"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
	"github.com/bizopshq/bizops_backend/internal/dto"
)

// QuoteSvcFacade defines the operations offered for managing quotes.
// ConvertQuoteToInvoice routes through invoice creation, so product-backed
// quote lines consume stock at conversion time, atomically with the invoice.
type QuoteSvcFacade interface {
	CreateQuote(ctx context.Context, ownerID string, req dto.CreateQuoteRequest) (*domain.Quote, error)
	GetQuoteByID(ctx context.Context, ownerID, quoteID string) (*domain.Quote, error)
	ListQuotes(ctx context.Context, ownerID string) ([]domain.Quote, error)
	UpdateQuote(ctx context.Context, ownerID, quoteID string, req dto.UpdateQuoteRequest) (*domain.Quote, error)
	DeleteQuote(ctx context.Context, ownerID, quoteID string) error
	ConvertQuoteToInvoice(ctx context.Context, ownerID, quoteID string) (*domain.Invoice, error)
}
