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
	"github.com/bizopshq/bizops_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const invoiceColumns = `invoice_id, owner_id, client_id, amount, due_date, status, is_recurring, frequency, next_run_date, created_at, created_by, last_updated_at, last_updated_by`

const lineItemColumns = `line_item_id, invoice_id, description, price, product_id`

const insertLineItemQuery = `
	INSERT INTO invoice_line_items (line_item_id, invoice_id, description, price, product_id)
	VALUES ($1, $2, $3, $4, $5);
`

type PgxInvoiceRepository struct {
	BaseRepository
	stock portsrepo.ProductStockManager
}

// newPgxInvoiceRepository creates a new repository for invoice data. The
// stock manager is injected so invoice creation can decrement product stock
// inside its own transaction.
func newPgxInvoiceRepository(pool *pgxpool.Pool, stock portsrepo.ProductStockManager) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
		stock:          stock,
	}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.OwnerID,
		&m.ClientID,
		&m.Amount,
		&m.DueDate,
		&m.Status,
		&m.IsRecurring,
		&m.Frequency,
		&m.NextRunDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertInvoiceTx(ctx context.Context, tx pgx.Tx, m models.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.InvoiceID,
		m.OwnerID,
		m.ClientID,
		m.Amount,
		m.DueDate,
		m.Status,
		m.IsRecurring,
		m.Frequency,
		m.NextRunDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return err
}

func insertLineItemsTx(ctx context.Context, tx pgx.Tx, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, item := range items {
		m := mapping.ToModelLineItem(item)
		batch.Queue(insertLineItemQuery, m.LineItemID, m.InvoiceID, m.Description, m.Price, m.ProductID)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return br.Close()
}

// SaveInvoice persists an invoice with its line items and consumes one unit
// of stock per entry of stockProductIDs, all in one transaction. If any
// product has no stock left the transaction is rolled back, which also
// restores the decrements already applied for earlier items.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, stockProductIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction for invoice save", err)
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := mapping.ToModelInvoice(invoice)
	if err := insertInvoiceTx(ctx, tx, m); err != nil {
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}
	if err := insertLineItemsTx(ctx, tx, invoice.Items); err != nil {
		return apperrors.NewAppError(500, "failed to insert line items for invoice "+m.InvoiceID, err)
	}

	for _, productID := range stockProductIDs {
		ok, err := r.stock.DecrementStockInTx(ctx, tx, invoice.OwnerID, productID, invoice.CreatedBy, invoice.CreatedAt)
		if err != nil {
			return err
		}
		if !ok {
			return &apperrors.StockExhaustedError{ProductID: productID}
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit invoice save", err)
	}
	return nil
}

// SaveGeneratedInvoice persists a generated copy and advances the source
// invoice's schedule in the same transaction. Either both writes land or
// neither does, so a crash between them cannot duplicate or skip a period.
func (r *PgxInvoiceRepository) SaveGeneratedInvoice(ctx context.Context, generated domain.Invoice, sourceInvoiceID string, nextRunDate time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction for generated invoice", err)
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := mapping.ToModelInvoice(generated)
	if err := insertInvoiceTx(ctx, tx, m); err != nil {
		return apperrors.NewAppError(500, "failed to insert generated invoice "+m.InvoiceID, err)
	}
	if err := insertLineItemsTx(ctx, tx, generated.Items); err != nil {
		return apperrors.NewAppError(500, "failed to insert line items for generated invoice "+m.InvoiceID, err)
	}

	advance := `
		UPDATE invoices
		SET next_run_date = $3, last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $1 AND owner_id = $2 AND is_recurring = TRUE;
	`
	tag, err := tx.Exec(ctx, advance, sourceInvoiceID, generated.OwnerID, nextRunDate, generated.CreatedAt, generated.CreatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to advance schedule for invoice "+sourceInvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		// Source deleted or no longer recurring between the scan and now.
		return apperrors.ErrNotFound
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit generated invoice", err)
	}
	return nil
}

func (r *PgxInvoiceRepository) loadLineItems(ctx context.Context, invoiceIDs []string) (map[string][]domain.LineItem, error) {
	itemsByInvoice := make(map[string][]domain.LineItem, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return itemsByInvoice, nil
	}
	query := `SELECT ` + lineItemColumns + ` FROM invoice_line_items WHERE invoice_id = ANY($1) ORDER BY line_item_id;`
	rows, err := r.Pool.Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoice line items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.LineItem
		if err := rows.Scan(&m.LineItemID, &m.InvoiceID, &m.Description, &m.Price, &m.ProductID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line item row", err)
		}
		itemsByInvoice[m.InvoiceID] = append(itemsByInvoice[m.InvoiceID], mapping.ToDomainLineItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line item rows", err)
	}
	return itemsByInvoice, nil
}

// FindInvoiceByID retrieves an invoice with its line items, scoped to its owner.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 AND owner_id = $2;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}

	items, err := r.loadLineItems(ctx, []string{m.InvoiceID})
	if err != nil {
		return nil, err
	}
	invoice := mapping.ToDomainInvoice(m)
	invoice.Items = items[m.InvoiceID]
	return &invoice, nil
}

// ListInvoicesByOwner retrieves all invoices (with line items) belonging to a user.
func (r *PgxInvoiceRepository) ListInvoicesByOwner(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE owner_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices for owner "+ownerID, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	invoiceIDs := []string{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(m))
		invoiceIDs = append(invoiceIDs, m.InvoiceID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}

	itemsByInvoice, err := r.loadLineItems(ctx, invoiceIDs)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		invoices[i].Items = itemsByInvoice[invoices[i].InvoiceID]
	}
	return invoices, nil
}

// ListDueRecurringInvoices retrieves a bounded batch of recurring invoices
// whose next_run_date has reached asOf. Keyset pagination on
// (next_run_date, invoice_id) keeps each scan bounded and stable even while
// earlier batches get their schedules advanced.
func (r *PgxInvoiceRepository) ListDueRecurringInvoices(ctx context.Context, asOf time.Time, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := []any{asOf, limit + 1}
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE is_recurring = TRUE AND next_run_date IS NOT NULL AND next_run_date <= $1
	`
	if nextToken != nil {
		tokenDate, tokenID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` AND (next_run_date, invoice_id) > ($3, $4)`
		args = append(args, tokenDate, tokenID)
	}
	query += ` ORDER BY next_run_date ASC, invoice_id ASC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query due recurring invoices", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	invoiceIDs := []string{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(m))
		invoiceIDs = append(invoiceIDs, m.InvoiceID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}

	var token *string
	if len(invoices) > limit {
		invoices = invoices[:limit]
		invoiceIDs = invoiceIDs[:limit]
		last := invoices[len(invoices)-1]
		t := pagination.EncodeToken(*last.NextRunDate, last.InvoiceID)
		token = &t
	}

	itemsByInvoice, err := r.loadLineItems(ctx, invoiceIDs)
	if err != nil {
		return nil, nil, err
	}
	for i := range invoices {
		invoices[i].Items = itemsByInvoice[invoices[i].InvoiceID]
	}
	return invoices, token, nil
}

// UpdateInvoice updates mutable invoice fields. Line items are immutable
// after creation so they are not touched here.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET client_id = $3, amount = $4, due_date = $5, status = $6,
		    is_recurring = $7, frequency = $8, next_run_date = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE invoice_id = $1 AND owner_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.InvoiceID,
		m.OwnerID,
		m.ClientID,
		m.Amount,
		m.DueDate,
		m.Status,
		m.IsRecurring,
		m.Frequency,
		m.NextRunDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteInvoice removes an invoice, scoped to its owner. Line items go with
// it through the ON DELETE CASCADE constraint. Stock consumed when the
// invoice was created is not restored.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, ownerID, invoiceID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1 AND owner_id = $2;`, invoiceID, ownerID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete invoice "+invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
