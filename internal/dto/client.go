package dto

import (
	"time"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
)

// CreateClientRequest defines the data needed to create a new client.
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateClientRequest defines the data allowed for updating a client.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID  string    `json:"clientID"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:  c.ClientID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.LastUpdatedAt,
	}
}

// ToListClientResponse converts a slice of domain.Client to ClientResponse DTOs
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i := range clients {
		res[i] = ToClientResponse(&clients[i])
	}
	return res
}
