package mapping

import (
	"github.com/bizopshq/bizops_backend/internal/core/domain"
	"github.com/bizopshq/bizops_backend/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:         d.ProductID,
		OwnerID:           d.OwnerID,
		Name:              d.Name,
		Description:       d.Description,
		Price:             d.Price,
		SKU:               d.SKU,
		Category:          d.Category,
		StockQuantity:     d.StockQuantity,
		LowStockThreshold: d.LowStockThreshold,
		IsActive:          d.IsActive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:         m.ProductID,
		OwnerID:           m.OwnerID,
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price,
		SKU:               m.SKU,
		Category:          m.Category,
		StockQuantity:     m.StockQuantity,
		LowStockThreshold: m.LowStockThreshold,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProductSlice converts a slice of model Products to a slice of domain Products
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}
