package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizopshq/bizops_backend/internal/apperrors"
	"github.com/bizopshq/bizops_backend/internal/core/domain"
	portsrepo "github.com/bizopshq/bizops_backend/internal/core/ports/repositories"
	portssvc "github.com/bizopshq/bizops_backend/internal/core/ports/services"
	"github.com/bizopshq/bizops_backend/internal/core/services"
	"github.com/bizopshq/bizops_backend/internal/dto"
	"github.com/bizopshq/bizops_backend/internal/utils/recurrence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

// Ensure MockInvoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, ownerID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByOwner(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListDueRecurringInvoices(ctx context.Context, asOf time.Time, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, asOf, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Invoice), returnedNextToken, args.Error(2)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, stockProductIDs []string) error {
	args := m.Called(ctx, invoice, stockProductIDs)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveGeneratedInvoice(ctx context.Context, generated domain.Invoice, sourceInvoiceID string, nextRunDate time.Time) error {
	args := m.Called(ctx, generated, sourceInvoiceID, nextRunDate)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, ownerID, invoiceID string) error {
	args := m.Called(ctx, ownerID, invoiceID)
	return args.Error(0)
}

// --- Mock ProductReader ---
type MockProductReader struct {
	mock.Mock
}

var _ portsrepo.ProductReader = (*MockProductReader)(nil)

func (m *MockProductReader) FindProductByID(ctx context.Context, ownerID, productID string) (*domain.Product, error) {
	args := m.Called(ctx, ownerID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductReader) FindProductsByIDs(ctx context.Context, ownerID string, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, ownerID, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductReader) ListProductsByOwner(ctx context.Context, ownerID string) ([]domain.Product, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

// --- Test Suite Setup ---
type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockProductRepo *MockProductReader
	service         portssvc.InvoiceSvcFacade
	ownerID         string
	clientID        string
	stockedProduct  domain.Product
	drainedProduct  domain.Product
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockProductRepo = new(MockProductReader)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockProductRepo)

	suite.ownerID = uuid.NewString()
	suite.clientID = uuid.NewString()

	suite.stockedProduct = domain.Product{
		ProductID:     uuid.NewString(),
		OwnerID:       suite.ownerID,
		Name:          "Widget",
		Price:         decimal.NewFromInt(25),
		StockQuantity: 3,
		IsActive:      true,
	}
	suite.drainedProduct = domain.Product{
		ProductID:     uuid.NewString(),
		OwnerID:       suite.ownerID,
		Name:          "Gadget",
		Price:         decimal.NewFromInt(40),
		StockQuantity: 0,
		IsActive:      true,
	}
}

func (suite *InvoiceServiceTestSuite) validRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		ClientID: suite.clientID,
		Amount:   decimal.NewFromInt(100),
		DueDate:  time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
	}
}

// --- Test Cases ---

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Success() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Items = []dto.CreateLineItemRequest{
		{Description: "Consulting", Price: decimal.NewFromInt(100)},
	}

	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), []string{}).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.NotEmpty(invoice.InvoiceID)
	suite.Equal(suite.ownerID, invoice.OwnerID)
	suite.Equal(domain.InvoiceUnpaid, invoice.Status)
	suite.False(invoice.IsRecurring)
	suite.Nil(invoice.NextRunDate)
	suite.Require().Len(invoice.Items, 1)
	suite.Equal(invoice.InvoiceID, invoice.Items[0].InvoiceID)
	suite.NotEmpty(invoice.Items[0].LineItemID)

	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertNotCalled(suite.T(), "FindProductsByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ConsumesStockPerLine() {
	ctx := context.Background()
	productID := suite.stockedProduct.ProductID
	req := suite.validRequest()
	// The same product on two lines consumes two units.
	req.Items = []dto.CreateLineItemRequest{
		{Description: "Widget A", Price: decimal.NewFromInt(25), ProductID: &productID},
		{Description: "Widget B", Price: decimal.NewFromInt(25), ProductID: &productID},
	}

	suite.mockProductRepo.On("FindProductsByIDs", ctx, suite.ownerID, []string{productID}).
		Return(map[string]domain.Product{productID: suite.stockedProduct}, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), []string{productID, productID}).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ZeroStockRejectsWholeInvoice() {
	ctx := context.Background()
	stockedID := suite.stockedProduct.ProductID
	drainedID := suite.drainedProduct.ProductID
	req := suite.validRequest()
	req.Items = []dto.CreateLineItemRequest{
		{Description: "Widget", Price: decimal.NewFromInt(25), ProductID: &stockedID},
		{Description: "Gadget", Price: decimal.NewFromInt(40), ProductID: &drainedID},
	}

	suite.mockProductRepo.On("FindProductsByIDs", ctx, suite.ownerID, []string{stockedID, drainedID}).
		Return(map[string]domain.Product{
			stockedID: suite.stockedProduct,
			drainedID: suite.drainedProduct,
		}, nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.Nil(invoice)
	var stockErr *apperrors.StockExhaustedError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Equal(drainedID, stockErr.ProductID)
	suite.Contains(stockErr.Error(), "Gadget")

	// Nothing is persisted when any product is out of stock.
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_UnknownProductHasNoStockEffect() {
	ctx := context.Background()
	unknownID := uuid.NewString()
	req := suite.validRequest()
	req.Items = []dto.CreateLineItemRequest{
		{Description: "Discontinued thing", Price: decimal.NewFromInt(10), ProductID: &unknownID},
	}

	suite.mockProductRepo.On("FindProductsByIDs", ctx, suite.ownerID, []string{unknownID}).
		Return(map[string]domain.Product{}, nil).Once()
	// The dangling reference reaches storage verbatim, with no stock decrement
	// scheduled for it.
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return len(inv.Items) == 1 && inv.Items[0].ProductID != nil && *inv.Items[0].ProductID == unknownID
	}), []string{}).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	// The line item itself survives, it just carries no stock effect.
	suite.Require().Len(invoice.Items, 1)
	suite.Equal(&unknownID, invoice.Items[0].ProductID)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ConcurrentStockRaceSurfacesProductName() {
	ctx := context.Background()
	productID := suite.stockedProduct.ProductID
	req := suite.validRequest()
	req.Items = []dto.CreateLineItemRequest{
		{Description: "Widget", Price: decimal.NewFromInt(25), ProductID: &productID},
	}

	suite.mockProductRepo.On("FindProductsByIDs", ctx, suite.ownerID, []string{productID}).
		Return(map[string]domain.Product{productID: suite.stockedProduct}, nil).Once()
	// The pre-check passed, but a concurrent request drained the last unit
	// before the conditional decrement ran.
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), []string{productID}).
		Return(&apperrors.StockExhaustedError{ProductID: productID}).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.Nil(invoice)
	var stockErr *apperrors.StockExhaustedError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Equal("Widget", stockErr.ProductName)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_RecurringSetsNextRunDate() {
	ctx := context.Background()
	req := suite.validRequest()
	req.IsRecurring = true
	req.Frequency = domain.FrequencyMonthly

	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), []string{}).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.True(invoice.IsRecurring)
	suite.Require().NotNil(invoice.NextRunDate)
	suite.Equal(recurrence.NextDate(req.DueDate, domain.FrequencyMonthly), *invoice.NextRunDate)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_RecurringDefaultsToMonthly() {
	ctx := context.Background()
	req := suite.validRequest()
	req.IsRecurring = true
	// Frequency left empty

	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), []string{}).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.FrequencyMonthly, invoice.Frequency)
	suite.Require().NotNil(invoice.NextRunDate)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_MissingClientFails() {
	ctx := context.Background()
	req := suite.validRequest()
	req.ClientID = ""

	_, err := suite.service.CreateInvoice(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NonPositiveAmountFails() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Amount = decimal.Zero

	_, err := suite.service.CreateInvoice(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_EnableRecurring() {
	ctx := context.Background()
	existing := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		OwnerID:   suite.ownerID,
		ClientID:  suite.clientID,
		Amount:    decimal.NewFromInt(100),
		DueDate:   time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		Status:    domain.InvoiceUnpaid,
	}
	isRecurring := true
	freq := domain.FrequencyWeekly
	req := dto.UpdateInvoiceRequest{IsRecurring: &isRecurring, Frequency: &freq}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.ownerID, existing.InvoiceID).Return(existing, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	updated, err := suite.service.UpdateInvoice(ctx, suite.ownerID, existing.InvoiceID, req)

	suite.Require().NoError(err)
	suite.True(updated.IsRecurring)
	suite.Require().NotNil(updated.NextRunDate)
	suite.Equal(recurrence.NextDate(existing.DueDate, domain.FrequencyWeekly), *updated.NextRunDate)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_DisableRecurringClearsSchedule() {
	ctx := context.Background()
	next := time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)
	existing := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		OwnerID:   suite.ownerID,
		ClientID:  suite.clientID,
		Amount:    decimal.NewFromInt(100),
		DueDate:   time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		Status:    domain.InvoiceUnpaid,
		RecurringSeries: domain.RecurringSeries{
			IsRecurring: true,
			Frequency:   domain.FrequencyMonthly,
			NextRunDate: &next,
		},
	}
	isRecurring := false
	req := dto.UpdateInvoiceRequest{IsRecurring: &isRecurring}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.ownerID, existing.InvoiceID).Return(existing, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return !inv.IsRecurring && inv.NextRunDate == nil
	})).Return(nil).Once()

	updated, err := suite.service.UpdateInvoice(ctx, suite.ownerID, existing.InvoiceID, req)

	suite.Require().NoError(err)
	suite.False(updated.IsRecurring)
	suite.Nil(updated.NextRunDate)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_NotFound() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.ownerID, invoiceID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateInvoice(ctx, suite.ownerID, invoiceID, dto.UpdateInvoiceRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_Delegates() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	suite.mockInvoiceRepo.On("DeleteInvoice", ctx, suite.ownerID, invoiceID).Return(nil).Once()

	err := suite.service.DeleteInvoice(ctx, suite.ownerID, invoiceID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ProductLookupError() {
	ctx := context.Background()
	productID := suite.stockedProduct.ProductID
	req := suite.validRequest()
	req.Items = []dto.CreateLineItemRequest{
		{Description: "Widget", Price: decimal.NewFromInt(25), ProductID: &productID},
	}
	repoErr := assert.AnError

	suite.mockProductRepo.On("FindProductsByIDs", ctx, suite.ownerID, []string{productID}).Return(nil, repoErr).Once()

	_, err := suite.service.CreateInvoice(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.Contains(err.Error(), repoErr.Error())
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
