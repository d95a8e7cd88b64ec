package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
	portsrepo "github.com/bizopshq/bizops_backend/internal/core/ports/repositories"
	portssvc "github.com/bizopshq/bizops_backend/internal/core/ports/services"
	"github.com/bizopshq/bizops_backend/internal/dto"
	"github.com/bizopshq/bizops_backend/internal/middleware"
)

const defaultLowStockThreshold = 5

// productService provides product management operations. Stock mutation is
// deliberately absent: only the invoice creation path moves stock.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

// CreateProduct creates a new product for the requesting user.
func (s *productService) CreateProduct(ctx context.Context, ownerID string, req dto.CreateProductRequest) (*domain.Product, error) {
	now := time.Now().UTC()

	category := req.Category
	if category == "" {
		category = "General"
	}
	threshold := defaultLowStockThreshold
	if req.LowStockThreshold != nil {
		threshold = *req.LowStockThreshold
	}

	product := domain.Product{
		ProductID:         uuid.NewString(),
		OwnerID:           ownerID,
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		SKU:               req.SKU,
		Category:          category,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: threshold,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to save product", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	return &product, nil
}

// GetProductByID retrieves a product owned by the requesting user.
func (s *productService) GetProductByID(ctx context.Context, ownerID, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, ownerID, productID)
}

// ListProducts lists all products of the requesting user.
func (s *productService) ListProducts(ctx context.Context, ownerID string) ([]domain.Product, error) {
	return s.productRepo.ListProductsByOwner(ctx, ownerID)
}

// UpdateProduct applies the provided changes to a product owned by the
// requesting user. StockQuantity cannot be changed here.
func (s *productService) UpdateProduct(ctx context.Context, ownerID, productID string, req dto.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.LowStockThreshold != nil {
		product.LowStockThreshold = *req.LowStockThreshold
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.LastUpdatedAt = time.Now().UTC()
	product.LastUpdatedBy = ownerID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", productID, err)
	}
	return product, nil
}

// DeleteProduct removes a product owned by the requesting user.
func (s *productService) DeleteProduct(ctx context.Context, ownerID, productID string) error {
	return s.productRepo.DeleteProduct(ctx, ownerID, productID)
}
