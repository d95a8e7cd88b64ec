package dto

import (
	"time"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateQuoteRequest defines the data needed to create a new quote.
// Line items reuse the invoice line item shape; they carry no stock effect
// until the quote converts.
type CreateQuoteRequest struct {
	ClientID   string                  `json:"client" binding:"required"`
	Amount     decimal.Decimal         `json:"amount" binding:"required"`
	ValidUntil time.Time               `json:"validUntil" binding:"required"`
	Items      []CreateLineItemRequest `json:"items"`
}

// UpdateQuoteRequest defines the data allowed for updating a quote.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateQuoteRequest struct {
	Amount     *decimal.Decimal    `json:"amount"`
	ValidUntil *time.Time          `json:"validUntil"`
	Status     *domain.QuoteStatus `json:"status" binding:"omitempty,oneof=pending accepted rejected"`
}

// QuoteLineItemResponse defines the data returned for a quote line item.
type QuoteLineItemResponse struct {
	QuoteLineItemID string          `json:"quoteLineItemID"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	ProductID       *string         `json:"productID,omitempty"`
}

// QuoteResponse defines the data returned for a quote.
type QuoteResponse struct {
	QuoteID    string                  `json:"quoteID"`
	ClientID   string                  `json:"clientID"`
	Amount     decimal.Decimal         `json:"amount"`
	ValidUntil time.Time               `json:"validUntil"`
	Status     domain.QuoteStatus      `json:"status"`
	Items      []QuoteLineItemResponse `json:"items"`
	CreatedAt  time.Time               `json:"createdAt"`
	UpdatedAt  time.Time               `json:"updatedAt"`
}

// ToQuoteResponse converts a domain.Quote to QuoteResponse DTO
func ToQuoteResponse(q *domain.Quote) QuoteResponse {
	items := make([]QuoteLineItemResponse, len(q.Items))
	for i, item := range q.Items {
		items[i] = QuoteLineItemResponse{
			QuoteLineItemID: item.QuoteLineItemID,
			Description:     item.Description,
			Price:           item.Price,
			ProductID:       item.ProductID,
		}
	}
	return QuoteResponse{
		QuoteID:    q.QuoteID,
		ClientID:   q.ClientID,
		Amount:     q.Amount,
		ValidUntil: q.ValidUntil,
		Status:     q.Status,
		Items:      items,
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.LastUpdatedAt,
	}
}

// ToListQuoteResponse converts a slice of domain.Quote to QuoteResponse DTOs
func ToListQuoteResponse(quotes []domain.Quote) []QuoteResponse {
	res := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		res[i] = ToQuoteResponse(&quotes[i])
	}
	return res
}
