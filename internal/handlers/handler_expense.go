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

// expenseHandler handles HTTP requests related to expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

// newExpenseHandler creates a new expenseHandler.
func newExpenseHandler(expenseService portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{
		expenseService: expenseService,
	}
}

// createExpense godoc
// @Summary Create an expense
// @Description Creates a new expense, optionally on a recurring schedule
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse "The created expense"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create expense"
// @Router /expenses/ [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateExpenseRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), ownerID, createReq)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating expense", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create expense in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		return
	}

	logger.Info("Expense created successfully", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// getExpense godoc
// @Summary Get an expense
// @Description Retrieves an expense by ID
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse "The expense"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to retrieve expense"
// @Router /expenses/{expenseID} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), ownerID, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Expense not found", slog.String("expense_id", expenseID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		logger.Error("Failed to get expense from service", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve expense"})
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists all expenses belonging to the authenticated user
// @Tags expenses
// @Produce  json
// @Success 200 {array} dto.ExpenseResponse "The user's expenses"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list expenses"
// @Router /expenses/ [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), ownerID)
	if err != nil {
		logger.Error("Failed to list expenses from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list expenses"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExpenseResponse(expenses))
}

// updateExpense godoc
// @Summary Update an expense
// @Description Updates an existing expense's details or recurring schedule
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Param   expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseResponse "The updated expense"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to update expense"
// @Router /expenses/{expenseID} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	updateReq := dto.UpdateExpenseRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for UpdateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), ownerID, expenseID, updateReq)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Expense not found for update", slog.String("expense_id", expenseID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating expense", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update expense in service", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Description Deletes an expense by ID
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 204 "Expense deleted"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to delete expense"
// @Router /expenses/{expenseID} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), ownerID, expenseID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Expense not found for delete", slog.String("expense_id", expenseID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		logger.Error("Failed to delete expense in service", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}

	c.Status(http.StatusNoContent)
}

// registerExpenseRoutes registers expense specific routes
func registerExpenseRoutes(group *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	expenseHandler := newExpenseHandler(expenseService)

	expenses := group.Group("/expenses")
	{
		expenses.POST("/", expenseHandler.createExpense)
		expenses.GET("/", expenseHandler.listExpenses)
		expenses.GET("/:expenseID", expenseHandler.getExpense)
		expenses.PUT("/:expenseID", expenseHandler.updateExpense)
		expenses.DELETE("/:expenseID", expenseHandler.deleteExpense)
	}
}
