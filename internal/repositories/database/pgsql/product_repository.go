package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/bizopshq/bizops_backend/internal/apperrors"
	"github.com/bizopshq/bizops_backend/internal/core/domain"
	portsrepo "github.com/bizopshq/bizops_backend/internal/core/ports/repositories"
	"github.com/bizopshq/bizops_backend/internal/models"
	"github.com/bizopshq/bizops_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `product_id, owner_id, name, description, price, sku, category, stock_quantity, low_stock_threshold, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.OwnerID,
		&m.Name,
		&m.Description,
		&m.Price,
		&m.SKU,
		&m.Category,
		&m.StockQuantity,
		&m.LowStockThreshold,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveProduct persists a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.OwnerID,
		m.Name,
		m.Description,
		m.Price,
		m.SKU,
		m.Category,
		m.StockQuantity,
		m.LowStockThreshold,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert product "+m.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a product by ID, scoped to its owner.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, ownerID, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1 AND owner_id = $2;`
	m, err := scanProduct(r.Pool.QueryRow(ctx, query, productID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find product by ID "+productID, err)
	}

	domainProduct := mapping.ToDomainProduct(m)
	return &domainProduct, nil
}

// FindProductsByIDs retrieves several products at once, scoped to their
// owner. Products that do not exist are simply absent from the result map.
func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, ownerID string, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1 AND product_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, ownerID, productIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Product, len(productIDs))
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		result[m.ProductID] = mapping.ToDomainProduct(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product rows", err)
	}
	return result, nil
}

// ListProductsByOwner retrieves all products belonging to a user.
func (r *PgxProductRepository) ListProductsByOwner(ctx context.Context, ownerID string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products for owner "+ownerID, err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		products = append(products, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product rows", err)
	}

	return mapping.ToDomainProductSlice(products), nil
}

// UpdateProduct updates an existing product. stock_quantity is not part of
// the statement: stock only moves through DecrementStockInTx.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		UPDATE products
		SET name = $3, description = $4, price = $5, sku = $6, category = $7,
		    low_stock_threshold = $8, is_active = $9, last_updated_at = $10, last_updated_by = $11
		WHERE product_id = $1 AND owner_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.OwnerID,
		m.Name,
		m.Description,
		m.Price,
		m.SKU,
		m.Category,
		m.LowStockThreshold,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update product "+m.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product, scoped to its owner. Line items that
// reference the product keep their dangling reference; the product_id column
// carries no foreign key, so deletion succeeds regardless of history.
func (r *PgxProductRepository) DeleteProduct(ctx context.Context, ownerID, productID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1 AND owner_id = $2;`, productID, ownerID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete product "+productID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DecrementStockInTx atomically consumes one unit of stock within an
// existing transaction. The WHERE guard makes the decrement conditional:
// a concurrent request that drained the last unit leaves this statement
// affecting zero rows, reported as ok=false. The row lock taken by the
// UPDATE serializes concurrent decrements of the same product.
func (r *PgxProductRepository) DecrementStockInTx(ctx context.Context, tx pgx.Tx, ownerID, productID, updatedBy string, at time.Time) (bool, error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - 1, last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1 AND owner_id = $2 AND stock_quantity > 0;
	`
	tag, err := tx.Exec(ctx, query, productID, ownerID, at, updatedBy)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to decrement stock for product "+productID, err)
	}
	return tag.RowsAffected() > 0, nil
}
