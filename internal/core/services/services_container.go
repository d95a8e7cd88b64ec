package services

import (
	portsrepo "github.com/bizopshq/bizops_backend/internal/core/ports/repositories"
	portssvc "github.com/bizopshq/bizops_backend/internal/core/ports/services"
	"github.com/bizopshq/bizops_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Client = NewClientService(repos.ClientRepo)
	container.Product = NewProductService(repos.ProductRepo)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.ProductRepo)
	container.Quote = NewQuoteService(repos.QuoteRepo, container.Invoice)
	container.Expense = NewExpenseService(repos.ExpenseRepo)
	container.Task = NewTaskService(repos.TaskRepo)
	container.Recurrence = NewRecurrenceService(
		repos.InvoiceRepo,
		repos.ExpenseRepo,
		WithRecurrenceBatchSize(cfg.RecurringBatchSize),
	)

	return container
}
