package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus mirrors the quote status enum at the persistence layer.
type QuoteStatus string

const (
	QuotePending  QuoteStatus = "pending"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRejected QuoteStatus = "rejected"
)

// Quote represents a row in the quotes table.
type Quote struct {
	QuoteID    string          `db:"quote_id"`
	OwnerID    string          `db:"owner_id"`
	ClientID   string          `db:"client_id"`
	Amount     decimal.Decimal `db:"amount"`
	ValidUntil time.Time       `db:"valid_until"`
	Status     QuoteStatus     `db:"status"`
	AuditFields
}

// QuoteLineItem represents a row in the quote_line_items table.
type QuoteLineItem struct {
	QuoteLineItemID string          `db:"quote_line_item_id"`
	QuoteID         string          `db:"quote_id"`
	Description     string          `db:"description"`
	Price           decimal.Decimal `db:"price"`
	ProductID       *string         `db:"product_id"` // Nullable
}
