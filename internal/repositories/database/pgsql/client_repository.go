package pgsql

import (
	"context"
	"errors"

	"github.com/bizopshq/bizops_backend/internal/apperrors"
	"github.com/bizopshq/bizops_backend/internal/core/domain"
	portsrepo "github.com/bizopshq/bizops_backend/internal/core/ports/repositories"
	"github.com/bizopshq/bizops_backend/internal/models"
	"github.com/bizopshq/bizops_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClientRepository struct {
	BaseRepository
}

// newPgxClientRepository creates a new repository for client data.
func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

// SaveClient persists a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	modelClient := mapping.ToModelClient(client)
	query := `
		INSERT INTO clients (client_id, owner_id, name, email, phone, address, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelClient.ClientID,
		modelClient.OwnerID,
		modelClient.Name,
		modelClient.Email,
		modelClient.Phone,
		modelClient.Address,
		modelClient.CreatedAt,
		modelClient.CreatedBy,
		modelClient.LastUpdatedAt,
		modelClient.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert client "+modelClient.ClientID, err)
	}
	return nil
}

// FindClientByID retrieves a client by ID, scoped to its owner.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, ownerID, clientID string) (*domain.Client, error) {
	query := `
		SELECT client_id, owner_id, name, email, phone, address, created_at, created_by, last_updated_at, last_updated_by
		FROM clients
		WHERE client_id = $1 AND owner_id = $2;
	`
	var m models.Client
	err := r.Pool.QueryRow(ctx, query, clientID, ownerID).Scan(
		&m.ClientID,
		&m.OwnerID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.Address,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find client by ID "+clientID, err)
	}

	domainClient := mapping.ToDomainClient(m)
	return &domainClient, nil
}

// ListClientsByOwner retrieves all clients belonging to a user.
func (r *PgxClientRepository) ListClientsByOwner(ctx context.Context, ownerID string) ([]domain.Client, error) {
	query := `
		SELECT client_id, owner_id, name, email, phone, address, created_at, created_by, last_updated_at, last_updated_by
		FROM clients
		WHERE owner_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query clients for owner "+ownerID, err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		var m models.Client
		err := rows.Scan(
			&m.ClientID,
			&m.OwnerID,
			&m.Name,
			&m.Email,
			&m.Phone,
			&m.Address,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan client row", err)
		}
		clients = append(clients, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating client rows", err)
	}

	return mapping.ToDomainClientSlice(clients), nil
}

// UpdateClient updates an existing client.
func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	modelClient := mapping.ToModelClient(client)
	query := `
		UPDATE clients
		SET name = $3, email = $4, phone = $5, address = $6, last_updated_at = $7, last_updated_by = $8
		WHERE client_id = $1 AND owner_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelClient.ClientID,
		modelClient.OwnerID,
		modelClient.Name,
		modelClient.Email,
		modelClient.Phone,
		modelClient.Address,
		modelClient.LastUpdatedAt,
		modelClient.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update client "+modelClient.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteClient removes a client, scoped to its owner.
func (r *PgxClientRepository) DeleteClient(ctx context.Context, ownerID, clientID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM clients WHERE client_id = $1 AND owner_id = $2;`, clientID, ownerID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete client "+clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
