package services

import (
	"context"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
	"github.com/bizopshq/bizops_backend/internal/dto"
)

// ProductSvcFacade defines the operations offered for managing products.
// Stock quantity is read-only through this interface; the invoice creation
// path is the only stock writer.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, ownerID string, req dto.CreateProductRequest) (*domain.Product, error)
	GetProductByID(ctx context.Context, ownerID, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, ownerID string) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, ownerID, productID string, req dto.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, ownerID, productID string) error
}
