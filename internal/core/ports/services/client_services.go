package services

import (
	"context"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
	"github.com/bizopshq/bizops_backend/internal/dto"
)

// ClientSvcFacade defines the operations offered for managing clients.
// Every operation is scoped to the requesting user's own records.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, ownerID string, req dto.CreateClientRequest) (*domain.Client, error)
	GetClientByID(ctx context.Context, ownerID, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, ownerID string) ([]domain.Client, error)
	UpdateClient(ctx context.Context, ownerID, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, ownerID, clientID string) error
}
