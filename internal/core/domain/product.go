package domain

import (
	"github.com/shopspring/decimal"
)

// Product represents a sellable item backed by inventory.
// StockQuantity is mutated only through the invoice creation path, which
// performs an atomic conditional decrement at the storage layer; it is never
// restored by invoice edits or deletion.
type Product struct {
	ProductID         string          `json:"productID"` // Primary Key (e.g., UUID)
	OwnerID           string          `json:"ownerID"`   // FK -> users.user_id (NON-NULL)
	Name              string          `json:"name"`
	Description       string          `json:"description"` // Nullable
	Price             decimal.Decimal `json:"price"`
	SKU               string          `json:"sku"`      // Nullable
	Category          string          `json:"category"` // Default: General
	StockQuantity     int             `json:"stockQuantity"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	IsActive          bool            `json:"isActive"`
	AuditFields
}
