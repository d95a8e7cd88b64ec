package mapping

import (
	"github.com/bizopshq/bizops_backend/internal/core/domain"
	"github.com/bizopshq/bizops_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice.
// Line items are mapped separately since they live in their own table.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:   d.InvoiceID,
		OwnerID:     d.OwnerID,
		ClientID:    d.ClientID,
		Amount:      d.Amount,
		DueDate:     d.DueDate,
		Status:      models.InvoiceStatus(d.Status),
		IsRecurring: d.IsRecurring,
		Frequency:   string(d.Frequency),
		NextRunDate: d.NextRunDate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID: m.InvoiceID,
		OwnerID:   m.OwnerID,
		ClientID:  m.ClientID,
		Amount:    m.Amount,
		DueDate:   m.DueDate,
		Status:    domain.InvoiceStatus(m.Status),
		RecurringSeries: domain.RecurringSeries{
			IsRecurring: m.IsRecurring,
			Frequency:   domain.Frequency(m.Frequency),
			NextRunDate: m.NextRunDate,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLineItem converts a domain LineItem to a model LineItem
func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		LineItemID:  d.LineItemID,
		InvoiceID:   d.InvoiceID,
		Description: d.Description,
		Price:       d.Price,
		ProductID:   d.ProductID,
	}
}

// ToDomainLineItem converts a model LineItem to a domain LineItem
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineItemID:  m.LineItemID,
		InvoiceID:   m.InvoiceID,
		Description: m.Description,
		Price:       m.Price,
		ProductID:   m.ProductID,
	}
}

// ToDomainLineItemSlice converts a slice of model LineItems to a slice of domain LineItems
func ToDomainLineItemSlice(ms []models.LineItem) []domain.LineItem {
	ds := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLineItem(m)
	}
	return ds
}
