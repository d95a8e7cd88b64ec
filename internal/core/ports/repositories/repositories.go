package repositories

// RepositoryProvider aggregates all repository facades for dependency injection.
type RepositoryProvider struct {
	ClientRepo  ClientRepositoryFacade
	ProductRepo ProductRepositoryFacade
	InvoiceRepo InvoiceRepositoryFacade
	QuoteRepo   QuoteRepositoryFacade
	ExpenseRepo ExpenseRepositoryFacade
	TaskRepo    TaskRepositoryFacade
}
