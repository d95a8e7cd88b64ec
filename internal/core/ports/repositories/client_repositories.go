package repositories

import (
	"context"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a client by ID, scoped to its owner.
	FindClientByID(ctx context.Context, ownerID, clientID string) (*domain.Client, error)

	// ListClientsByOwner retrieves all clients belonging to a user.
	ListClientsByOwner(ctx context.Context, ownerID string) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient updates an existing client.
	UpdateClient(ctx context.Context, client domain.Client) error

	// DeleteClient removes a client, scoped to its owner.
	DeleteClient(ctx context.Context, ownerID, clientID string) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
