package repositories

import (
	"context"
	"time"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
)

// QuoteReader defines read operations for quote data
type QuoteReader interface {
	// FindQuoteByID retrieves a quote with its line items, scoped to its owner.
	FindQuoteByID(ctx context.Context, ownerID, quoteID string) (*domain.Quote, error)

	// ListQuotesByOwner retrieves all quotes belonging to a user.
	ListQuotesByOwner(ctx context.Context, ownerID string) ([]domain.Quote, error)
}

// QuoteWriter defines write operations for quote data
type QuoteWriter interface {
	// SaveQuote persists a new quote with its line items.
	SaveQuote(ctx context.Context, quote domain.Quote) error

	// UpdateQuote updates mutable quote fields. Line items are immutable
	// after creation.
	UpdateQuote(ctx context.Context, quote domain.Quote) error

	// MarkQuoteAccepted flips a pending quote to accepted. Returns
	// ErrNotFound when the quote does not exist or is no longer pending,
	// which guards against converting the same quote twice.
	MarkQuoteAccepted(ctx context.Context, ownerID, quoteID, updatedBy string, at time.Time) error

	// DeleteQuote removes a quote, scoped to its owner.
	DeleteQuote(ctx context.Context, ownerID, quoteID string) error
}

// QuoteRepositoryFacade combines all quote-related repository interfaces
type QuoteRepositoryFacade interface {
	QuoteReader
	QuoteWriter
}
