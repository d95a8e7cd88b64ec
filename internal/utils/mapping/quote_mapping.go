package mapping

import (
	"github.com/bizopshq/bizops_backend/internal/core/domain"
	"github.com/bizopshq/bizops_backend/internal/models"
)

// ToModelQuote converts a domain Quote to a model Quote.
// Line items are mapped separately since they live in their own table.
func ToModelQuote(d domain.Quote) models.Quote {
	return models.Quote{
		QuoteID:     d.QuoteID,
		OwnerID:     d.OwnerID,
		ClientID:    d.ClientID,
		Amount:      d.Amount,
		ValidUntil:  d.ValidUntil,
		Status:      models.QuoteStatus(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainQuote converts a model Quote to a domain Quote
func ToDomainQuote(m models.Quote) domain.Quote {
	return domain.Quote{
		QuoteID:     m.QuoteID,
		OwnerID:     m.OwnerID,
		ClientID:    m.ClientID,
		Amount:      m.Amount,
		ValidUntil:  m.ValidUntil,
		Status:      domain.QuoteStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelQuoteLineItem converts a domain QuoteLineItem to a model QuoteLineItem
func ToModelQuoteLineItem(d domain.QuoteLineItem) models.QuoteLineItem {
	return models.QuoteLineItem{
		QuoteLineItemID: d.QuoteLineItemID,
		QuoteID:         d.QuoteID,
		Description:     d.Description,
		Price:           d.Price,
		ProductID:       d.ProductID,
	}
}

// ToDomainQuoteLineItem converts a model QuoteLineItem to a domain QuoteLineItem
func ToDomainQuoteLineItem(m models.QuoteLineItem) domain.QuoteLineItem {
	return domain.QuoteLineItem{
		QuoteLineItemID: m.QuoteLineItemID,
		QuoteID:         m.QuoteID,
		Description:     m.Description,
		Price:           m.Price,
		ProductID:       m.ProductID,
	}
}
