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

// clientService provides client management operations.
type clientService struct {
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new ClientService.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// CreateClient creates a new client for the requesting user.
func (s *clientService) CreateClient(ctx context.Context, ownerID string, req dto.CreateClientRequest) (*domain.Client, error) {
	now := time.Now().UTC()
	client := domain.Client{
		ClientID: uuid.NewString(),
		OwnerID:  ownerID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to save client", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save client: %w", err)
	}
	return &client, nil
}

// GetClientByID retrieves a client owned by the requesting user.
func (s *clientService) GetClientByID(ctx context.Context, ownerID, clientID string) (*domain.Client, error) {
	return s.clientRepo.FindClientByID(ctx, ownerID, clientID)
}

// ListClients lists all clients of the requesting user.
func (s *clientService) ListClients(ctx context.Context, ownerID string) ([]domain.Client, error) {
	return s.clientRepo.ListClientsByOwner(ctx, ownerID)
}

// UpdateClient applies the provided changes to a client owned by the requesting user.
func (s *clientService) UpdateClient(ctx context.Context, ownerID, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, ownerID, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	client.LastUpdatedAt = time.Now().UTC()
	client.LastUpdatedBy = ownerID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		return nil, fmt.Errorf("failed to update client %s: %w", clientID, err)
	}
	return client, nil
}

// DeleteClient removes a client owned by the requesting user.
func (s *clientService) DeleteClient(ctx context.Context, ownerID, clientID string) error {
	return s.clientRepo.DeleteClient(ctx, ownerID, clientID)
}
