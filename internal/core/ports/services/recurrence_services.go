package services

import "context"

// RecurrenceSvcFacade drives regeneration of recurring documents. It is
// invoked by an external timer (once daily); the trigger must not fire
// overlapping runs. The method reports only fatal query errors; per-document
// failures are logged and do not stop the batch. Completion is observed via
// store state and logs.
type RecurrenceSvcFacade interface {
	RunDueDocuments(ctx context.Context) error
}
