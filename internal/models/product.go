package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a row in the products table.
// stock_quantity carries a CHECK (stock_quantity >= 0) constraint; the only
// writer is the conditional decrement issued during invoice creation.
type Product struct {
	ProductID         string          `db:"product_id"`
	OwnerID           string          `db:"owner_id"`
	Name              string          `db:"name"`
	Description       string          `db:"description"` // Nullable
	Price             decimal.Decimal `db:"price"`
	SKU               string          `db:"sku"`      // Nullable
	Category          string          `db:"category"` // Default 'General'
	StockQuantity     int             `db:"stock_quantity"`
	LowStockThreshold int             `db:"low_stock_threshold"`
	IsActive          bool            `db:"is_active"`
	AuditFields
}
