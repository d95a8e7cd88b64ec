package dto

import (
	"time"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a new product.
type CreateProductRequest struct {
	Name              string          `json:"name" binding:"required"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price" binding:"required"`
	SKU               string          `json:"sku"`
	Category          string          `json:"category"`
	StockQuantity     int             `json:"stockQuantity" binding:"omitempty,gte=0"`
	LowStockThreshold *int            `json:"lowStockThreshold" binding:"omitempty,gte=0"`
}

// UpdateProductRequest defines the data allowed for updating a product.
// StockQuantity is intentionally absent: stock only moves through invoice creation.
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	SKU               *string          `json:"sku"`
	Category          *string          `json:"category"`
	LowStockThreshold *int             `json:"lowStockThreshold" binding:"omitempty,gte=0"`
	IsActive          *bool            `json:"isActive"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID         string          `json:"productID"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	SKU               string          `json:"sku"`
	Category          string          `json:"category"`
	StockQuantity     int             `json:"stockQuantity"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	LowStock          bool            `json:"lowStock"`
	IsActive          bool            `json:"isActive"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:         p.ProductID,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		SKU:               p.SKU,
		Category:          p.Category,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		LowStock:          p.StockQuantity <= p.LowStockThreshold,
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.LastUpdatedAt,
	}
}

// ToListProductResponse converts a slice of domain.Product to ProductResponse DTOs
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}
