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

// quoteHandler handles HTTP requests related to quotes.
type quoteHandler struct {
	quoteService portssvc.QuoteSvcFacade
}

// newQuoteHandler creates a new quoteHandler.
func newQuoteHandler(quoteService portssvc.QuoteSvcFacade) *quoteHandler {
	return &quoteHandler{
		quoteService: quoteService,
	}
}

// createQuote godoc
// @Summary Create a quote
// @Description Creates a new pending quote for the authenticated user
// @Tags quotes
// @Accept  json
// @Produce  json
// @Param   quote body dto.CreateQuoteRequest true "Quote details"
// @Success 201 {object} dto.QuoteResponse "The created quote"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create quote"
// @Router /quotes/ [post]
func (h *quoteHandler) createQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateQuoteRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateQuote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), ownerID, createReq)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating quote", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create quote in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quote"})
		return
	}

	logger.Info("Quote created successfully", slog.String("quote_id", quote.QuoteID))
	c.JSON(http.StatusCreated, dto.ToQuoteResponse(quote))
}

// getQuote godoc
// @Summary Get a quote
// @Description Retrieves a quote by ID
// @Tags quotes
// @Produce  json
// @Param   quoteID path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse "The quote"
// @Failure 404 {object} map[string]string "Quote not found"
// @Failure 500 {object} map[string]string "Failed to retrieve quote"
// @Router /quotes/{quoteID} [get]
func (h *quoteHandler) getQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("quoteID")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	quote, err := h.quoteService.GetQuoteByID(c.Request.Context(), ownerID, quoteID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Quote not found", slog.String("quote_id", quoteID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
			return
		}
		logger.Error("Failed to get quote from service", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve quote"})
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

// listQuotes godoc
// @Summary List quotes
// @Description Lists all quotes belonging to the authenticated user
// @Tags quotes
// @Produce  json
// @Success 200 {array} dto.QuoteResponse "The user's quotes"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list quotes"
// @Router /quotes/ [get]
func (h *quoteHandler) listQuotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	quotes, err := h.quoteService.ListQuotes(c.Request.Context(), ownerID)
	if err != nil {
		logger.Error("Failed to list quotes from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list quotes"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListQuoteResponse(quotes))
}

// updateQuote godoc
// @Summary Update a quote
// @Description Updates an existing quote's details
// @Tags quotes
// @Accept  json
// @Produce  json
// @Param   quoteID path string true "Quote ID"
// @Param   quote body dto.UpdateQuoteRequest true "Fields to update"
// @Success 200 {object} dto.QuoteResponse "The updated quote"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Quote not found"
// @Failure 500 {object} map[string]string "Failed to update quote"
// @Router /quotes/{quoteID} [put]
func (h *quoteHandler) updateQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("quoteID")

	updateReq := dto.UpdateQuoteRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for UpdateQuote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), ownerID, quoteID, updateReq)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Quote not found for update", slog.String("quote_id", quoteID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating quote", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update quote in service", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quote"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

// deleteQuote godoc
// @Summary Delete a quote
// @Description Deletes a quote by ID
// @Tags quotes
// @Produce  json
// @Param   quoteID path string true "Quote ID"
// @Success 204 "Quote deleted"
// @Failure 404 {object} map[string]string "Quote not found"
// @Failure 500 {object} map[string]string "Failed to delete quote"
// @Router /quotes/{quoteID} [delete]
func (h *quoteHandler) deleteQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("quoteID")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), ownerID, quoteID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Quote not found for delete", slog.String("quote_id", quoteID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
			return
		}
		logger.Error("Failed to delete quote in service", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete quote"})
		return
	}

	c.Status(http.StatusNoContent)
}

// convertQuote godoc
// @Summary Convert a quote to an invoice
// @Description Creates an unpaid invoice from a pending quote and marks the quote accepted. Product-backed quote lines consume stock.
// @Tags quotes
// @Produce  json
// @Param   quoteID path string true "Quote ID"
// @Success 201 {object} dto.InvoiceResponse "The created invoice"
// @Failure 400 {object} map[string]string "Quote already converted or product out of stock"
// @Failure 404 {object} map[string]string "Quote not found"
// @Failure 500 {object} map[string]string "Failed to convert quote"
// @Router /quotes/{quoteID}/convert [post]
func (h *quoteHandler) convertQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("quoteID")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.quoteService.ConvertQuoteToInvoice(c.Request.Context(), ownerID, quoteID)
	if err != nil {
		var stockErr *apperrors.StockExhaustedError
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Quote not found for conversion", slog.String("quote_id", quoteID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error converting quote", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &stockErr):
			logger.Warn("Quote conversion rejected: product out of stock",
				slog.String("quote_id", quoteID),
				slog.String("product_id", stockErr.ProductID))
			c.JSON(http.StatusBadRequest, gin.H{"error": stockErr.Error()})
		default:
			logger.Error("Failed to convert quote in service", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert quote"})
		}
		return
	}

	logger.Info("Quote converted successfully",
		slog.String("quote_id", quoteID),
		slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// registerQuoteRoutes registers quote specific routes
func registerQuoteRoutes(group *gin.RouterGroup, quoteService portssvc.QuoteSvcFacade) {
	quoteHandler := newQuoteHandler(quoteService)

	quotes := group.Group("/quotes")
	{
		quotes.POST("/", quoteHandler.createQuote)
		quotes.GET("/", quoteHandler.listQuotes)
		quotes.GET("/:quoteID", quoteHandler.getQuote)
		quotes.PUT("/:quoteID", quoteHandler.updateQuote)
		quotes.DELETE("/:quoteID", quoteHandler.deleteQuote)
		quotes.POST("/:quoteID/convert", quoteHandler.convertQuote)
	}
}
