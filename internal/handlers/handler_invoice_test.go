package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bizopshq/bizops_backend/internal/apperrors"
	"github.com/bizopshq/bizops_backend/internal/core/domain"
	portssvc "github.com/bizopshq/bizops_backend/internal/core/ports/services"
	"github.com/bizopshq/bizops_backend/internal/dto"
	"github.com/bizopshq/bizops_backend/internal/handlers"
	"github.com/bizopshq/bizops_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, ownerID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetInvoiceByID(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, ownerID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) ListInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) UpdateInvoice(ctx context.Context, ownerID, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, ownerID, invoiceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) DeleteInvoice(ctx context.Context, ownerID, invoiceID string) error {
	args := m.Called(ctx, ownerID, invoiceID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Test Suite ---
type InvoiceHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockInvoiceService *MockInvoiceService
	jwtSecret          string
	ownerID            string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *InvoiceHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "bizops-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.ownerID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockInvoiceService = new(MockInvoiceService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterInvoiceRoutes(v1, suite.mockInvoiceService)
}

func (suite *InvoiceHandlerTestSuite) authedRequest(method, url string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.ownerID))
	return req
}

// --- Test Cases ---

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_Success() {
	clientID := uuid.NewString()
	dueDate := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		OwnerID:   suite.ownerID,
		ClientID:  clientID,
		Amount:    decimal.NewFromInt(100),
		DueDate:   dueDate,
		Status:    domain.InvoiceUnpaid,
	}

	suite.mockInvoiceService.On("CreateInvoice",
		mock.AnythingOfType("*context.valueCtx"),
		suite.ownerID,
		mock.MatchedBy(func(req dto.CreateInvoiceRequest) bool {
			return req.ClientID == clientID && req.Amount.Equal(decimal.NewFromInt(100))
		}),
	).Return(invoice, nil).Once()

	body, _ := json.Marshal(gin.H{
		"client":  clientID,
		"amount":  "100",
		"dueDate": dueDate.Format(time.RFC3339),
	})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/invoices/", body))

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.InvoiceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Equal(invoice.InvoiceID, responseBody.InvoiceID)
	suite.Equal(domain.InvoiceUnpaid, responseBody.Status)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_OutOfStockReturns400() {
	clientID := uuid.NewString()
	stockErr := &apperrors.StockExhaustedError{ProductID: uuid.NewString(), ProductName: "Widget"}

	suite.mockInvoiceService.On("CreateInvoice",
		mock.AnythingOfType("*context.valueCtx"),
		suite.ownerID,
		mock.AnythingOfType("dto.CreateInvoiceRequest"),
	).Return(nil, stockErr).Once()

	body, _ := json.Marshal(gin.H{
		"client":  clientID,
		"amount":  "100",
		"dueDate": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/invoices/", body))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Widget")
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_MissingClientFailsBinding() {
	body, _ := json.Marshal(gin.H{
		"amount":  "100",
		"dueDate": time.Now().Format(time.RFC3339),
	})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/invoices/", body))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_NotFound() {
	invoiceID := uuid.NewString()
	suite.mockInvoiceService.On("GetInvoiceByID",
		mock.AnythingOfType("*context.valueCtx"),
		suite.ownerID,
		invoiceID,
	).Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/invoices/%s", invoiceID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, url, nil))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestListInvoices_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/invoices/", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "ListInvoices", mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestDeleteInvoice_Success() {
	invoiceID := uuid.NewString()
	suite.mockInvoiceService.On("DeleteInvoice",
		mock.AnythingOfType("*context.valueCtx"),
		suite.ownerID,
		invoiceID,
	).Return(nil).Once()

	url := fmt.Sprintf("/api/v1/invoices/%s", invoiceID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodDelete, url, nil))

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestInvoiceHandler(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}
