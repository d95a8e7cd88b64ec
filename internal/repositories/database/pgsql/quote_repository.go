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

const quoteColumns = `quote_id, owner_id, client_id, amount, valid_until, status, created_at, created_by, last_updated_at, last_updated_by`

const quoteLineItemColumns = `quote_line_item_id, quote_id, description, price, product_id`

const insertQuoteLineItemQuery = `
	INSERT INTO quote_line_items (quote_line_item_id, quote_id, description, price, product_id)
	VALUES ($1, $2, $3, $4, $5);
`

type PgxQuoteRepository struct {
	BaseRepository
}

// newPgxQuoteRepository creates a new repository for quote data.
func newPgxQuoteRepository(pool *pgxpool.Pool) portsrepo.QuoteRepositoryFacade {
	return &PgxQuoteRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.QuoteRepositoryFacade = (*PgxQuoteRepository)(nil)

func scanQuote(row pgx.Row) (models.Quote, error) {
	var m models.Quote
	err := row.Scan(
		&m.QuoteID,
		&m.OwnerID,
		&m.ClientID,
		&m.Amount,
		&m.ValidUntil,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveQuote persists a quote with its line items in one transaction.
func (r *PgxQuoteRepository) SaveQuote(ctx context.Context, quote domain.Quote) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction for quote save", err)
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := mapping.ToModelQuote(quote)
	insert := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, insert,
		m.QuoteID,
		m.OwnerID,
		m.ClientID,
		m.Amount,
		m.ValidUntil,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert quote "+m.QuoteID, err)
	}

	if len(quote.Items) > 0 {
		batch := &pgx.Batch{}
		for _, item := range quote.Items {
			im := mapping.ToModelQuoteLineItem(item)
			batch.Queue(insertQuoteLineItemQuery, im.QuoteLineItemID, im.QuoteID, im.Description, im.Price, im.ProductID)
		}
		br := tx.SendBatch(ctx, batch)
		for range quote.Items {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return apperrors.NewAppError(500, "failed to insert line items for quote "+m.QuoteID, err)
			}
		}
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to close line item batch for quote "+m.QuoteID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit quote save", err)
	}
	return nil
}

func (r *PgxQuoteRepository) loadQuoteLineItems(ctx context.Context, quoteIDs []string) (map[string][]domain.QuoteLineItem, error) {
	itemsByQuote := make(map[string][]domain.QuoteLineItem, len(quoteIDs))
	if len(quoteIDs) == 0 {
		return itemsByQuote, nil
	}
	query := `SELECT ` + quoteLineItemColumns + ` FROM quote_line_items WHERE quote_id = ANY($1) ORDER BY quote_line_item_id;`
	rows, err := r.Pool.Query(ctx, query, quoteIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query quote line items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.QuoteLineItem
		if err := rows.Scan(&m.QuoteLineItemID, &m.QuoteID, &m.Description, &m.Price, &m.ProductID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan quote line item row", err)
		}
		itemsByQuote[m.QuoteID] = append(itemsByQuote[m.QuoteID], mapping.ToDomainQuoteLineItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating quote line item rows", err)
	}
	return itemsByQuote, nil
}

// FindQuoteByID retrieves a quote with its line items, scoped to its owner.
func (r *PgxQuoteRepository) FindQuoteByID(ctx context.Context, ownerID, quoteID string) (*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE quote_id = $1 AND owner_id = $2;`
	m, err := scanQuote(r.Pool.QueryRow(ctx, query, quoteID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find quote by ID "+quoteID, err)
	}

	items, err := r.loadQuoteLineItems(ctx, []string{m.QuoteID})
	if err != nil {
		return nil, err
	}
	quote := mapping.ToDomainQuote(m)
	quote.Items = items[m.QuoteID]
	return &quote, nil
}

// ListQuotesByOwner retrieves all quotes (with line items) belonging to a user.
func (r *PgxQuoteRepository) ListQuotesByOwner(ctx context.Context, ownerID string) ([]domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE owner_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query quotes for owner "+ownerID, err)
	}
	defer rows.Close()

	quotes := []domain.Quote{}
	quoteIDs := []string{}
	for rows.Next() {
		m, err := scanQuote(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan quote row", err)
		}
		quotes = append(quotes, mapping.ToDomainQuote(m))
		quoteIDs = append(quoteIDs, m.QuoteID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating quote rows", err)
	}

	itemsByQuote, err := r.loadQuoteLineItems(ctx, quoteIDs)
	if err != nil {
		return nil, err
	}
	for i := range quotes {
		quotes[i].Items = itemsByQuote[quotes[i].QuoteID]
	}
	return quotes, nil
}

// UpdateQuote updates mutable quote fields. Line items are immutable after
// creation so they are not touched here.
func (r *PgxQuoteRepository) UpdateQuote(ctx context.Context, quote domain.Quote) error {
	m := mapping.ToModelQuote(quote)
	query := `
		UPDATE quotes
		SET client_id = $3, amount = $4, valid_until = $5, status = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE quote_id = $1 AND owner_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.QuoteID,
		m.OwnerID,
		m.ClientID,
		m.Amount,
		m.ValidUntil,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update quote "+m.QuoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkQuoteAccepted flips a quote to accepted, conditional on it not being
// accepted already. The status guard makes a second conversion of the same
// quote affect zero rows, reported as ErrNotFound.
func (r *PgxQuoteRepository) MarkQuoteAccepted(ctx context.Context, ownerID, quoteID, updatedBy string, at time.Time) error {
	query := `
		UPDATE quotes
		SET status = 'accepted', last_updated_at = $3, last_updated_by = $4
		WHERE quote_id = $1 AND owner_id = $2 AND status <> 'accepted';
	`
	tag, err := r.Pool.Exec(ctx, query, quoteID, ownerID, at, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark quote accepted "+quoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteQuote removes a quote, scoped to its owner. Line items go with it
// through the ON DELETE CASCADE constraint.
func (r *PgxQuoteRepository) DeleteQuote(ctx context.Context, ownerID, quoteID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM quotes WHERE quote_id = $1 AND owner_id = $2;`, quoteID, ownerID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete quote "+quoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
