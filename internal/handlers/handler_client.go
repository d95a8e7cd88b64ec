package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bizopshq/bizops_backend/internal/apperrors"
	portssvc "github.com/bizopshq/bizops_backend/internal/core/ports/services"
	"github.com/bizopshq/bizops_backend/internal/dto"
	"github.com/bizopshq/bizops_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// clientHandler handles HTTP requests related to clients.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

// newClientHandler creates a new clientHandler.
func newClientHandler(clientService portssvc.ClientSvcFacade) *clientHandler {
	return &clientHandler{
		clientService: clientService,
	}
}

// createClient godoc
// @Summary Create a client
// @Description Creates a new client for the authenticated user
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse "The created client"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create client"
// @Router /clients/ [post]
func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateClientRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), ownerID, createReq)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating client", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create client in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}

	logger.Info("Client created successfully", slog.String("client_id", client.ClientID))
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// getClient godoc
// @Summary Get a client
// @Description Retrieves a client by ID
// @Tags clients
// @Produce  json
// @Param   clientID path string true "Client ID"
// @Success 200 {object} dto.ClientResponse "The client"
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 500 {object} map[string]string "Failed to retrieve client"
// @Router /clients/{clientID} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	client, err := h.clientService.GetClientByID(c.Request.Context(), ownerID, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found", slog.String("client_id", clientID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		logger.Error("Failed to get client from service", slog.String("error", err.Error()), slog.String("client_id", clientID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// listClients godoc
// @Summary List clients
// @Description Lists all clients belonging to the authenticated user
// @Tags clients
// @Produce  json
// @Success 200 {array} dto.ClientResponse "The user's clients"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list clients"
// @Router /clients/ [get]
func (h *clientHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), ownerID)
	if err != nil {
		logger.Error("Failed to list clients from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListClientResponse(clients))
}

// updateClient godoc
// @Summary Update a client
// @Description Updates an existing client's details
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   clientID path string true "Client ID"
// @Param   client body dto.UpdateClientRequest true "Fields to update"
// @Success 200 {object} dto.ClientResponse "The updated client"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 500 {object} map[string]string "Failed to update client"
// @Router /clients/{clientID} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	updateReq := dto.UpdateClientRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for UpdateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), ownerID, clientID, updateReq)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Client not found for update", slog.String("client_id", clientID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating client", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update client in service", slog.String("error", err.Error()), slog.String("client_id", clientID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// deleteClient godoc
// @Summary Delete a client
// @Description Deletes a client by ID
// @Tags clients
// @Produce  json
// @Param   clientID path string true "Client ID"
// @Success 204 "Client deleted"
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 500 {object} map[string]string "Failed to delete client"
// @Router /clients/{clientID} [delete]
func (h *clientHandler) deleteClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), ownerID, clientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found for delete", slog.String("client_id", clientID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		logger.Error("Failed to delete client in service", slog.String("error", err.Error()), slog.String("client_id", clientID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		return
	}

	c.Status(http.StatusNoContent)
}

// registerClientRoutes registers client specific routes
func registerClientRoutes(group *gin.RouterGroup, clientService portssvc.ClientSvcFacade) {
	clientHandler := newClientHandler(clientService)

	clients := group.Group("/clients")
	{
		clients.POST("/", clientHandler.createClient)
		clients.GET("/", clientHandler.listClients)
		clients.GET("/:clientID", clientHandler.getClient)
		clients.PUT("/:clientID", clientHandler.updateClient)
		clients.DELETE("/:clientID", clientHandler.deleteClient)
	}
}
