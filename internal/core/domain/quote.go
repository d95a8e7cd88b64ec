package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus indicates where a quote stands with the client.
type QuoteStatus string

const (
	QuotePending  QuoteStatus = "pending"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRejected QuoteStatus = "rejected"
)

// QuoteLineItem is one entry in a quote's item list. The product reference is
// informational until the quote converts to an invoice; only the conversion
// consumes stock.
type QuoteLineItem struct {
	QuoteLineItemID string          `json:"quoteLineItemID"` // Primary Key (e.g., UUID)
	QuoteID         string          `json:"quoteID"`         // FK -> quotes.quote_id
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	ProductID       *string         `json:"productID,omitempty"`
}

// Quote represents a priced offer sent to a client. An accepted quote has
// been converted into an invoice and cannot convert again.
type Quote struct {
	QuoteID    string          `json:"quoteID"` // Primary Key (e.g., UUID)
	OwnerID    string          `json:"ownerID"` // FK -> users.user_id (NON-NULL)
	ClientID   string          `json:"clientID"`
	Amount     decimal.Decimal `json:"amount"`
	ValidUntil time.Time       `json:"validUntil"`
	Status     QuoteStatus     `json:"status"` // Default: pending
	Items      []QuoteLineItem `json:"items"`
	AuditFields
}
