package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
	portsrepo "github.com/bizopshq/bizops_backend/internal/core/ports/repositories"
	portssvc "github.com/bizopshq/bizops_backend/internal/core/ports/services"
	"github.com/bizopshq/bizops_backend/internal/core/services"
	"github.com/bizopshq/bizops_backend/internal/utils/recurrence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

// Ensure MockExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, ownerID, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, ownerID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByOwner(ctx context.Context, ownerID string) ([]domain.Expense, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListDueRecurringExpenses(ctx context.Context, asOf time.Time, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, asOf, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Expense), returnedNextToken, args.Error(2)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) SaveGeneratedExpense(ctx context.Context, generated domain.Expense, sourceExpenseID string, nextRunDate time.Time) error {
	args := m.Called(ctx, generated, sourceExpenseID, nextRunDate)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, ownerID, expenseID string) error {
	args := m.Called(ctx, ownerID, expenseID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type RecurrenceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockExpenseRepo *MockExpenseRepository
	service         portssvc.RecurrenceSvcFacade
	now             time.Time
	ownerID         string
}

func (suite *RecurrenceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.now = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	suite.ownerID = uuid.NewString()
	suite.service = services.NewRecurrenceService(
		suite.mockInvoiceRepo,
		suite.mockExpenseRepo,
		services.WithRecurrenceClock(func() time.Time { return suite.now }),
		services.WithRecurrenceBatchSize(2),
	)
}

func (suite *RecurrenceServiceTestSuite) dueInvoice(nextRunDate time.Time, freq domain.Frequency) domain.Invoice {
	invoiceID := uuid.NewString()
	productID := uuid.NewString()
	return domain.Invoice{
		InvoiceID: invoiceID,
		OwnerID:   suite.ownerID,
		ClientID:  uuid.NewString(),
		Amount:    decimal.NewFromInt(250),
		DueDate:   nextRunDate.AddDate(0, -1, 0),
		Status:    domain.InvoicePaid,
		Items: []domain.LineItem{
			{LineItemID: uuid.NewString(), InvoiceID: invoiceID, Description: "Retainer", Price: decimal.NewFromInt(200)},
			{LineItemID: uuid.NewString(), InvoiceID: invoiceID, Description: "Widget", Price: decimal.NewFromInt(50), ProductID: &productID},
		},
		RecurringSeries: domain.RecurringSeries{
			IsRecurring: true,
			Frequency:   freq,
			NextRunDate: &nextRunDate,
		},
	}
}

func (suite *RecurrenceServiceTestSuite) dueExpense(nextRunDate time.Time, freq domain.Frequency) domain.Expense {
	return domain.Expense{
		ExpenseID:   uuid.NewString(),
		OwnerID:     suite.ownerID,
		Description: "Office rent",
		Amount:      decimal.NewFromInt(1200),
		Category:    domain.CategoryOffice,
		Date:        nextRunDate.AddDate(0, -1, 0),
		RecurringSeries: domain.RecurringSeries{
			IsRecurring: true,
			Frequency:   freq,
			NextRunDate: &nextRunDate,
		},
	}
}

func (suite *RecurrenceServiceTestSuite) expectNoDueExpenses(ctx context.Context) {
	suite.mockExpenseRepo.On("ListDueRecurringExpenses", ctx, suite.now, 2, (*string)(nil)).
		Return([]domain.Expense{}, nil, nil).Once()
}

func (suite *RecurrenceServiceTestSuite) expectNoDueInvoices(ctx context.Context) {
	suite.mockInvoiceRepo.On("ListDueRecurringInvoices", ctx, suite.now, 2, (*string)(nil)).
		Return([]domain.Invoice{}, nil, nil).Once()
}

// --- Test Cases ---

func (suite *RecurrenceServiceTestSuite) TestRunDueDocuments_GeneratesInvoiceCopy() {
	ctx := context.Background()
	nextRun := time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)
	source := suite.dueInvoice(nextRun, domain.FrequencyMonthly)

	suite.mockInvoiceRepo.On("ListDueRecurringInvoices", ctx, suite.now, 2, (*string)(nil)).
		Return([]domain.Invoice{source}, nil, nil).Once()
	suite.expectNoDueExpenses(ctx)

	expectedNext := recurrence.NextDate(nextRun, domain.FrequencyMonthly)
	suite.mockInvoiceRepo.On("SaveGeneratedInvoice", ctx, mock.MatchedBy(func(generated domain.Invoice) bool {
		if generated.InvoiceID == source.InvoiceID {
			return false
		}
		if generated.IsRecurring || generated.NextRunDate != nil {
			return false
		}
		if generated.Status != domain.InvoiceUnpaid {
			return false
		}
		if !generated.DueDate.Equal(suite.now.Add(30 * 24 * time.Hour)) {
			return false
		}
		if len(generated.Items) != len(source.Items) {
			return false
		}
		for i, item := range generated.Items {
			if item.LineItemID == source.Items[i].LineItemID || item.InvoiceID != generated.InvoiceID {
				return false
			}
			if item.Description != source.Items[i].Description || !item.Price.Equal(source.Items[i].Price) {
				return false
			}
		}
		return true
	}), source.InvoiceID, expectedNext).Return(nil).Once()

	err := suite.service.RunDueDocuments(ctx)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *RecurrenceServiceTestSuite) TestRunDueDocuments_ScheduleDoesNotDriftOnLateRun() {
	ctx := context.Background()
	// The scheduler is ten days late; the next date still anchors at the
	// stored nextRunDate, not at the run time.
	nextRun := time.Date(2026, time.February, 19, 0, 0, 0, 0, time.UTC)
	source := suite.dueInvoice(nextRun, domain.FrequencyWeekly)

	suite.mockInvoiceRepo.On("ListDueRecurringInvoices", ctx, suite.now, 2, (*string)(nil)).
		Return([]domain.Invoice{source}, nil, nil).Once()
	suite.expectNoDueExpenses(ctx)

	expectedNext := time.Date(2026, time.February, 26, 0, 0, 0, 0, time.UTC)
	suite.mockInvoiceRepo.On("SaveGeneratedInvoice", ctx, mock.AnythingOfType("domain.Invoice"), source.InvoiceID, expectedNext).Return(nil).Once()

	err := suite.service.RunDueDocuments(ctx)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *RecurrenceServiceTestSuite) TestRunDueDocuments_PerRecordFailureDoesNotStopRun() {
	ctx := context.Background()
	nextRun := time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)
	failing := suite.dueInvoice(nextRun, domain.FrequencyMonthly)
	healthy := suite.dueInvoice(nextRun, domain.FrequencyMonthly)

	suite.mockInvoiceRepo.On("ListDueRecurringInvoices", ctx, suite.now, 2, (*string)(nil)).
		Return([]domain.Invoice{failing, healthy}, nil, nil).Once()
	suite.expectNoDueExpenses(ctx)

	suite.mockInvoiceRepo.On("SaveGeneratedInvoice", ctx, mock.AnythingOfType("domain.Invoice"), failing.InvoiceID, mock.AnythingOfType("time.Time")).
		Return(assert.AnError).Once()
	suite.mockInvoiceRepo.On("SaveGeneratedInvoice", ctx, mock.AnythingOfType("domain.Invoice"), healthy.InvoiceID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.RunDueDocuments(ctx)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *RecurrenceServiceTestSuite) TestRunDueDocuments_DrainsAllBatches() {
	ctx := context.Background()
	nextRun := time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)
	first := suite.dueInvoice(nextRun, domain.FrequencyMonthly)
	second := suite.dueInvoice(nextRun, domain.FrequencyMonthly)
	third := suite.dueInvoice(nextRun, domain.FrequencyMonthly)
	token := "batch-2"

	suite.mockInvoiceRepo.On("ListDueRecurringInvoices", ctx, suite.now, 2, (*string)(nil)).
		Return([]domain.Invoice{first, second}, token, nil).Once()
	suite.mockInvoiceRepo.On("ListDueRecurringInvoices", ctx, suite.now, 2, &token).
		Return([]domain.Invoice{third}, nil, nil).Once()
	suite.expectNoDueExpenses(ctx)

	suite.mockInvoiceRepo.On("SaveGeneratedInvoice", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(nil).Times(3)

	err := suite.service.RunDueDocuments(ctx)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *RecurrenceServiceTestSuite) TestRunDueDocuments_GeneratesExpenseCopy() {
	ctx := context.Background()
	nextRun := time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)
	source := suite.dueExpense(nextRun, domain.FrequencyMonthly)

	suite.expectNoDueInvoices(ctx)
	suite.mockExpenseRepo.On("ListDueRecurringExpenses", ctx, suite.now, 2, (*string)(nil)).
		Return([]domain.Expense{source}, nil, nil).Once()

	expectedNext := recurrence.NextDate(nextRun, domain.FrequencyMonthly)
	suite.mockExpenseRepo.On("SaveGeneratedExpense", ctx, mock.MatchedBy(func(generated domain.Expense) bool {
		return generated.ExpenseID != source.ExpenseID &&
			!generated.IsRecurring &&
			generated.NextRunDate == nil &&
			generated.Date.Equal(suite.now) &&
			generated.Description == source.Description &&
			generated.Category == source.Category &&
			generated.Amount.Equal(source.Amount)
	}), source.ExpenseID, expectedNext).Return(nil).Once()

	err := suite.service.RunDueDocuments(ctx)

	suite.Require().NoError(err)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *RecurrenceServiceTestSuite) TestRunDueDocuments_NothingDue() {
	ctx := context.Background()
	suite.expectNoDueInvoices(ctx)
	suite.expectNoDueExpenses(ctx)

	err := suite.service.RunDueDocuments(ctx)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveGeneratedInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveGeneratedExpense", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurrenceServiceTestSuite) TestRunDueDocuments_ListFailureAbortsRun() {
	ctx := context.Background()
	suite.mockInvoiceRepo.On("ListDueRecurringInvoices", ctx, suite.now, 2, (*string)(nil)).
		Return(nil, nil, assert.AnError).Once()

	err := suite.service.RunDueDocuments(ctx)

	suite.Require().Error(err)
	suite.Contains(err.Error(), assert.AnError.Error())
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "ListDueRecurringExpenses", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecurrenceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecurrenceServiceTestSuite))
}
