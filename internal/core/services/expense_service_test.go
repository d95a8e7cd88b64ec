package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizopshq/bizops_backend/internal/apperrors"
	"github.com/bizopshq/bizops_backend/internal/core/domain"
	portssvc "github.com/bizopshq/bizops_backend/internal/core/ports/services"
	"github.com/bizopshq/bizops_backend/internal/core/services"
	"github.com/bizopshq/bizops_backend/internal/dto"
	"github.com/bizopshq/bizops_backend/internal/utils/recurrence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	service         portssvc.ExpenseSvcFacade
	now             time.Time
	ownerID         string
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.now = time.Date(2026, time.January, 31, 12, 0, 0, 0, time.UTC)
	suite.ownerID = uuid.NewString()
	suite.service = services.NewExpenseService(
		suite.mockExpenseRepo,
		services.WithExpenseClock(func() time.Time { return suite.now }),
	)
}

// --- Test Cases ---

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Success() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Description: "Team licenses",
		Amount:      decimal.NewFromInt(300),
		Category:    domain.CategorySoftware,
	}

	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.NotEmpty(expense.ExpenseID)
	suite.Equal(suite.ownerID, expense.OwnerID)
	// Date defaults to the current time when absent.
	suite.Equal(suite.now, expense.Date)
	suite.False(expense.IsRecurring)
	suite.Nil(expense.NextRunDate)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_RecurringAnchorsAtDate() {
	ctx := context.Background()
	date := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
	req := dto.CreateExpenseRequest{
		Description: "Office rent",
		Amount:      decimal.NewFromInt(1200),
		Category:    domain.CategoryOffice,
		Date:        &date,
		IsRecurring: true,
		Frequency:   domain.FrequencyMonthly,
	}

	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.True(expense.IsRecurring)
	suite.Require().NotNil(expense.NextRunDate)
	// Jan 31 + 1 month clamps to the end of February.
	suite.Equal(time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), *expense.NextRunDate)
	suite.Equal(recurrence.NextDate(date, domain.FrequencyMonthly), *expense.NextRunDate)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_MissingDescriptionFails() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Amount:   decimal.NewFromInt(50),
		Category: domain.CategoryOther,
	}

	_, err := suite.service.CreateExpense(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	// The message names exactly the fields this check covers; the amount has
	// its own check and message.
	suite.ErrorContains(err, "description and category are required")
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_NonPositiveAmountFails() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Description: "Refund",
		Amount:      decimal.NewFromInt(-10),
		Category:    domain.CategoryOther,
	}

	_, err := suite.service.CreateExpense(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_EnableRecurring() {
	ctx := context.Background()
	existing := &domain.Expense{
		ExpenseID:   uuid.NewString(),
		OwnerID:     suite.ownerID,
		Description: "Hosting",
		Amount:      decimal.NewFromInt(80),
		Category:    domain.CategorySoftware,
		Date:        time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
	}
	isRecurring := true
	req := dto.UpdateExpenseRequest{IsRecurring: &isRecurring}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, suite.ownerID, existing.ExpenseID).Return(existing, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()

	updated, err := suite.service.UpdateExpense(ctx, suite.ownerID, existing.ExpenseID, req)

	suite.Require().NoError(err)
	suite.True(updated.IsRecurring)
	// Unset frequency falls back to monthly.
	suite.Equal(domain.FrequencyMonthly, updated.Frequency)
	suite.Require().NotNil(updated.NextRunDate)
	suite.Equal(time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC), *updated.NextRunDate)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_DisableRecurringClearsSchedule() {
	ctx := context.Background()
	next := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	existing := &domain.Expense{
		ExpenseID:   uuid.NewString(),
		OwnerID:     suite.ownerID,
		Description: "Hosting",
		Amount:      decimal.NewFromInt(80),
		Category:    domain.CategorySoftware,
		Date:        time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		RecurringSeries: domain.RecurringSeries{
			IsRecurring: true,
			Frequency:   domain.FrequencyMonthly,
			NextRunDate: &next,
		},
	}
	isRecurring := false
	req := dto.UpdateExpenseRequest{IsRecurring: &isRecurring}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, suite.ownerID, existing.ExpenseID).Return(existing, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return !e.IsRecurring && e.NextRunDate == nil
	})).Return(nil).Once()

	updated, err := suite.service.UpdateExpense(ctx, suite.ownerID, existing.ExpenseID, req)

	suite.Require().NoError(err)
	suite.False(updated.IsRecurring)
	suite.Nil(updated.NextRunDate)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_NotFound() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, suite.ownerID, expenseID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateExpense(ctx, suite.ownerID, expenseID, dto.UpdateExpenseRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_Delegates() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	suite.mockExpenseRepo.On("DeleteExpense", ctx, suite.ownerID, expenseID).Return(nil).Once()

	err := suite.service.DeleteExpense(ctx, suite.ownerID, expenseID)

	suite.Require().NoError(err)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
