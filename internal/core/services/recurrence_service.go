package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
	portsrepo "github.com/bizopshq/bizops_backend/internal/core/ports/repositories"
	portssvc "github.com/bizopshq/bizops_backend/internal/core/ports/services"
	"github.com/bizopshq/bizops_backend/internal/middleware"
	"github.com/bizopshq/bizops_backend/internal/utils/recurrence"
)

const (
	// Generated invoices are payable 30 days after generation.
	generatedInvoiceDueTerm = 30 * 24 * time.Hour

	defaultRecurrenceBatchSize = 50
)

// recurrenceService regenerates recurring invoices and expenses. For each
// due record it writes a fresh non-recurring copy and advances the source's
// nextRunDate, anchored at the previous nextRunDate (never at "now") so the
// cadence does not drift with scheduler latency. Both writes happen in one
// storage transaction, so a crash cannot leave a generated copy without the
// schedule advance or vice versa.
type recurrenceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	expenseRepo portsrepo.ExpenseRepositoryFacade
	batchSize   int
	now         func() time.Time
}

// RecurrenceServiceOption is a functional option for configuring the recurrence service.
type RecurrenceServiceOption func(*recurrenceService)

// WithRecurrenceClock overrides the service's time source, mainly for tests.
func WithRecurrenceClock(now func() time.Time) RecurrenceServiceOption {
	return func(s *recurrenceService) {
		s.now = now
	}
}

// WithRecurrenceBatchSize bounds the number of due records fetched per query.
func WithRecurrenceBatchSize(size int) RecurrenceServiceOption {
	return func(s *recurrenceService) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// NewRecurrenceService creates a new RecurrenceService.
func NewRecurrenceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, expenseRepo portsrepo.ExpenseRepositoryFacade, options ...RecurrenceServiceOption) portssvc.RecurrenceSvcFacade {
	svc := &recurrenceService{
		invoiceRepo: invoiceRepo,
		expenseRepo: expenseRepo,
		batchSize:   defaultRecurrenceBatchSize,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.RecurrenceSvcFacade = (*recurrenceService)(nil)

// RunDueDocuments processes every recurring invoice and expense whose
// nextRunDate has passed. Records are fetched in bounded batches and handled
// sequentially; a failure on one record is logged and does not stop the
// rest. Only a failing batch query aborts the run.
func (s *recurrenceService) RunDueDocuments(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	asOf := s.now()
	logger.Info("Recurring document run started", slog.Time("as_of", asOf))

	generated, failed := 0, 0

	var nextToken *string
	for {
		invoices, token, err := s.invoiceRepo.ListDueRecurringInvoices(ctx, asOf, s.batchSize, nextToken)
		if err != nil {
			return fmt.Errorf("failed to list due recurring invoices: %w", err)
		}
		for i := range invoices {
			if err := s.generateInvoice(ctx, &invoices[i], asOf); err != nil {
				failed++
				logger.Error("Failed to generate recurring invoice",
					slog.String("invoice_id", invoices[i].InvoiceID),
					slog.String("error", err.Error()))
				continue
			}
			generated++
		}
		if token == nil {
			break
		}
		nextToken = token
	}

	nextToken = nil
	for {
		expenses, token, err := s.expenseRepo.ListDueRecurringExpenses(ctx, asOf, s.batchSize, nextToken)
		if err != nil {
			return fmt.Errorf("failed to list due recurring expenses: %w", err)
		}
		for i := range expenses {
			if err := s.generateExpense(ctx, &expenses[i], asOf); err != nil {
				failed++
				logger.Error("Failed to generate recurring expense",
					slog.String("expense_id", expenses[i].ExpenseID),
					slog.String("error", err.Error()))
				continue
			}
			generated++
		}
		if token == nil {
			break
		}
		nextToken = token
	}

	logger.Info("Recurring document run finished",
		slog.Int("generated", generated),
		slog.Int("failed", failed))
	return nil
}

// generateInvoice writes a non-recurring copy of the source invoice and
// advances the source's schedule in one transaction.
func (s *recurrenceService) generateInvoice(ctx context.Context, source *domain.Invoice, asOf time.Time) error {
	if source.NextRunDate == nil {
		return fmt.Errorf("recurring invoice %s has no nextRunDate", source.InvoiceID)
	}

	invoiceID := uuid.NewString()
	items := make([]domain.LineItem, len(source.Items))
	for i, item := range source.Items {
		items[i] = domain.LineItem{
			LineItemID:  uuid.NewString(),
			InvoiceID:   invoiceID,
			Description: item.Description,
			Price:       item.Price,
			ProductID:   item.ProductID,
		}
	}

	generated := domain.Invoice{
		InvoiceID: invoiceID,
		OwnerID:   source.OwnerID,
		ClientID:  source.ClientID,
		Amount:    source.Amount,
		DueDate:   asOf.Add(generatedInvoiceDueTerm),
		Status:    domain.InvoiceUnpaid,
		Items:     items,
		RecurringSeries: domain.RecurringSeries{
			IsRecurring: false,
			Frequency:   source.Frequency.Normalize(),
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     asOf,
			CreatedBy:     source.OwnerID,
			LastUpdatedAt: asOf,
			LastUpdatedBy: source.OwnerID,
		},
	}

	// Anchor at the previous nextRunDate, not asOf: a late scheduler run must
	// not push the whole series later.
	next := recurrence.NextDate(*source.NextRunDate, source.Frequency)

	if err := s.invoiceRepo.SaveGeneratedInvoice(ctx, generated, source.InvoiceID, next); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Generated recurring invoice",
		slog.String("source_invoice_id", source.InvoiceID),
		slog.String("generated_invoice_id", invoiceID),
		slog.String("client_id", source.ClientID),
		slog.Time("next_run_date", next))
	return nil
}

// generateExpense writes a non-recurring copy of the source expense dated at
// the processing time and advances the source's schedule in one transaction.
func (s *recurrenceService) generateExpense(ctx context.Context, source *domain.Expense, asOf time.Time) error {
	if source.NextRunDate == nil {
		return fmt.Errorf("recurring expense %s has no nextRunDate", source.ExpenseID)
	}

	expenseID := uuid.NewString()
	generated := domain.Expense{
		ExpenseID:   expenseID,
		OwnerID:     source.OwnerID,
		Description: source.Description,
		Amount:      source.Amount,
		Category:    source.Category,
		Date:        asOf,
		RecurringSeries: domain.RecurringSeries{
			IsRecurring: false,
			Frequency:   source.Frequency.Normalize(),
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     asOf,
			CreatedBy:     source.OwnerID,
			LastUpdatedAt: asOf,
			LastUpdatedBy: source.OwnerID,
		},
	}

	next := recurrence.NextDate(*source.NextRunDate, source.Frequency)

	if err := s.expenseRepo.SaveGeneratedExpense(ctx, generated, source.ExpenseID, next); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Generated recurring expense",
		slog.String("source_expense_id", source.ExpenseID),
		slog.String("generated_expense_id", expenseID),
		slog.String("description", source.Description),
		slog.Time("next_run_date", next))
	return nil
}
