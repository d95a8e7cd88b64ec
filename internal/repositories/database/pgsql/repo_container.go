package pgsql

import (
	portsrepo "github.com/bizopshq/bizops_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgsql repositories against a shared
// connection pool. The invoice repository receives the product repository as
// its stock manager so invoice creation can decrement stock inside its own
// transaction.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	productRepo := newPgxProductRepository(pool)
	return &portsrepo.RepositoryProvider{
		ClientRepo:  newPgxClientRepository(pool),
		ProductRepo: productRepo,
		InvoiceRepo: newPgxInvoiceRepository(pool, productRepo),
		QuoteRepo:   newPgxQuoteRepository(pool),
		ExpenseRepo: newPgxExpenseRepository(pool),
		TaskRepo:    newPgxTaskRepository(pool),
	}
}
