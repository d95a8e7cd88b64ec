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

// productHandler handles HTTP requests related to products.
type productHandler struct {
	productService portssvc.ProductSvcFacade
}

// newProductHandler creates a new productHandler.
func newProductHandler(productService portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{
		productService: productService,
	}
}

// createProduct godoc
// @Summary Create a product
// @Description Creates a new product with an initial stock quantity
// @Tags products
// @Accept  json
// @Produce  json
// @Param   product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse "The created product"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create product"
// @Router /products/ [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateProductRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), ownerID, createReq)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating product", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create product in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	logger.Info("Product created successfully", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// getProduct godoc
// @Summary Get a product
// @Description Retrieves a product by ID, including its current stock level
// @Tags products
// @Produce  json
// @Param   productID path string true "Product ID"
// @Success 200 {object} dto.ProductResponse "The product"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Failed to retrieve product"
// @Router /products/{productID} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.productService.GetProductByID(c.Request.Context(), ownerID, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Product not found", slog.String("product_id", productID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logger.Error("Failed to get product from service", slog.String("error", err.Error()), slog.String("product_id", productID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary List products
// @Description Lists all products belonging to the authenticated user
// @Tags products
// @Produce  json
// @Success 200 {array} dto.ProductResponse "The user's products"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list products"
// @Router /products/ [get]
func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), ownerID)
	if err != nil {
		logger.Error("Failed to list products from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListProductResponse(products))
}

// updateProduct godoc
// @Summary Update a product
// @Description Updates product details. Stock quantity cannot be changed here; it only moves through invoice creation.
// @Tags products
// @Accept  json
// @Produce  json
// @Param   productID path string true "Product ID"
// @Param   product body dto.UpdateProductRequest true "Fields to update"
// @Success 200 {object} dto.ProductResponse "The updated product"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Failed to update product"
// @Router /products/{productID} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	updateReq := dto.UpdateProductRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for UpdateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), ownerID, productID, updateReq)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Product not found for update", slog.String("product_id", productID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating product", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update product in service", slog.String("error", err.Error()), slog.String("product_id", productID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// deleteProduct godoc
// @Summary Delete a product
// @Description Deletes a product by ID
// @Tags products
// @Produce  json
// @Param   productID path string true "Product ID"
// @Success 204 "Product deleted"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Failed to delete product"
// @Router /products/{productID} [delete]
func (h *productHandler) deleteProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), ownerID, productID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Product not found for delete", slog.String("product_id", productID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logger.Error("Failed to delete product in service", slog.String("error", err.Error()), slog.String("product_id", productID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.Status(http.StatusNoContent)
}

// registerProductRoutes registers product specific routes
func registerProductRoutes(group *gin.RouterGroup, productService portssvc.ProductSvcFacade) {
	productHandler := newProductHandler(productService)

	products := group.Group("/products")
	{
		products.POST("/", productHandler.createProduct)
		products.GET("/", productHandler.listProducts)
		products.GET("/:productID", productHandler.getProduct)
		products.PUT("/:productID", productHandler.updateProduct)
		products.DELETE("/:productID", productHandler.deleteProduct)
	}
}
