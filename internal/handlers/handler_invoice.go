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

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(invoiceService portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: invoiceService,
	}
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Creates a new invoice with its line items. Line items referencing a product consume one unit of stock each; if any referenced product is out of stock the whole invoice is rejected and no stock is consumed.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse "The created invoice"
// @Failure 400 {object} map[string]string "Invalid request or out-of-stock product"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create invoice"
// @Router /invoices/ [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateInvoiceRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), ownerID, createReq)
	if err != nil {
		var stockErr *apperrors.StockExhaustedError
		switch {
		case errors.As(err, &stockErr):
			logger.Warn("Out-of-stock product on invoice", slog.String("product_id", stockErr.ProductID))
			c.JSON(http.StatusBadRequest, gin.H{"error": stockErr.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create invoice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		}
		return
	}

	logger.Info("Invoice created successfully", slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Retrieves an invoice and its line items by ID
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse "The invoice"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to retrieve invoice"
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), ownerID, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		logger.Error("Failed to get invoice from service", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Description Lists all invoices belonging to the authenticated user
// @Tags invoices
// @Produce  json
// @Success 200 {array} dto.InvoiceResponse "The user's invoices"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Router /invoices/ [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), ownerID)
	if err != nil {
		logger.Error("Failed to list invoices from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListInvoiceResponse(invoices))
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Updates an invoice's status, amount, due date or recurring schedule. Line items are immutable after creation.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} dto.InvoiceResponse "The updated invoice"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to update invoice"
// @Router /invoices/{invoiceID} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	updateReq := dto.UpdateInvoiceRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for UpdateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), ownerID, invoiceID, updateReq)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Invoice not found for update", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update invoice in service", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Description Deletes an invoice and its line items. Stock consumed by the invoice is not restored.
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 204 "Invoice deleted"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to delete invoice"
// @Router /invoices/{invoiceID} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), ownerID, invoiceID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found for delete", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		logger.Error("Failed to delete invoice in service", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterInvoiceRoutes registers invoice specific routes
func RegisterInvoiceRoutes(group *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	invoiceHandler := newInvoiceHandler(invoiceService)

	invoices := group.Group("/invoices")
	{
		invoices.POST("/", invoiceHandler.createInvoice)
		invoices.GET("/", invoiceHandler.listInvoices)
		invoices.GET("/:invoiceID", invoiceHandler.getInvoice)
		invoices.PUT("/:invoiceID", invoiceHandler.updateInvoice)
		invoices.DELETE("/:invoiceID", invoiceHandler.deleteInvoice)
	}
}
