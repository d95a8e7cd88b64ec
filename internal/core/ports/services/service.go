package services

// ServiceContainer holds all service facades for dependency injection.
type ServiceContainer struct {
	Client     ClientSvcFacade
	Product    ProductSvcFacade
	Invoice    InvoiceSvcFacade
	Quote      QuoteSvcFacade
	Expense    ExpenseSvcFacade
	Task       TaskSvcFacade
	Recurrence RecurrenceSvcFacade
}
