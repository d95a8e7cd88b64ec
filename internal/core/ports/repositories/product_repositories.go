package repositories

import (
	"context"
	"time"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ProductReader defines read operations for product data
type ProductReader interface {
	// FindProductByID retrieves a product by ID, scoped to its owner.
	FindProductByID(ctx context.Context, ownerID, productID string) (*domain.Product, error)

	// FindProductsByIDs retrieves several products at once, scoped to their owner.
	// Products that do not exist are simply absent from the result map.
	FindProductsByIDs(ctx context.Context, ownerID string, productIDs []string) (map[string]domain.Product, error)

	// ListProductsByOwner retrieves all products belonging to a user.
	ListProductsByOwner(ctx context.Context, ownerID string) ([]domain.Product, error)
}

// ProductWriter defines write operations for product data
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct updates an existing product. Stock is deliberately not
	// touched here; it belongs to the invoice creation path.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// DeleteProduct removes a product, scoped to its owner.
	DeleteProduct(ctx context.Context, ownerID, productID string) error
}

// ProductStockManager defines the stock mutation hook used inside the
// invoice creation transaction.
type ProductStockManager interface {
	// DecrementStockInTx atomically decrements a product's stock by one unit
	// within an existing transaction, but only if stock remains. It returns
	// false (with a nil error) when the product is out of stock, letting the
	// caller abort the surrounding transaction.
	DecrementStockInTx(ctx context.Context, tx pgx.Tx, ownerID, productID, updatedBy string, at time.Time) (bool, error)
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
	ProductStockManager
}
