package dto

import (
	"time"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineItemRequest defines one entry of an invoice's item list.
// ProductID is optional; when present the line consumes one unit of stock.
type CreateLineItemRequest struct {
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ProductID   *string         `json:"productID"`
}

// CreateInvoiceRequest defines the data needed to create a new invoice.
type CreateInvoiceRequest struct {
	ClientID    string                  `json:"client" binding:"required"`
	Amount      decimal.Decimal         `json:"amount" binding:"required"`
	DueDate     time.Time               `json:"dueDate" binding:"required"`
	Items       []CreateLineItemRequest `json:"items"`
	IsRecurring bool                    `json:"isRecurring"`
	Frequency   domain.Frequency        `json:"frequency" binding:"omitempty,oneof=weekly monthly yearly"`
}

// UpdateInvoiceRequest defines the data allowed for updating an invoice.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateInvoiceRequest struct {
	Amount      *decimal.Decimal      `json:"amount"`
	DueDate     *time.Time            `json:"dueDate"`
	Status      *domain.InvoiceStatus `json:"status" binding:"omitempty,oneof=unpaid paid"`
	IsRecurring *bool                 `json:"isRecurring"`
	Frequency   *domain.Frequency     `json:"frequency" binding:"omitempty,oneof=weekly monthly yearly"`
}

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	LineItemID  string          `json:"lineItemID"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ProductID   *string         `json:"productID,omitempty"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID   string               `json:"invoiceID"`
	ClientID    string               `json:"clientID"`
	Amount      decimal.Decimal      `json:"amount"`
	DueDate     time.Time            `json:"dueDate"`
	Status      domain.InvoiceStatus `json:"status"`
	Items       []LineItemResponse   `json:"items"`
	IsRecurring bool                 `json:"isRecurring"`
	Frequency   domain.Frequency     `json:"frequency"`
	NextRunDate *time.Time           `json:"nextRunDate,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]LineItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = LineItemResponse{
			LineItemID:  item.LineItemID,
			Description: item.Description,
			Price:       item.Price,
			ProductID:   item.ProductID,
		}
	}
	return InvoiceResponse{
		InvoiceID:   inv.InvoiceID,
		ClientID:    inv.ClientID,
		Amount:      inv.Amount,
		DueDate:     inv.DueDate,
		Status:      inv.Status,
		Items:       items,
		IsRecurring: inv.IsRecurring,
		Frequency:   inv.Frequency,
		NextRunDate: inv.NextRunDate,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.LastUpdatedAt,
	}
}

// ToListInvoiceResponse converts a slice of domain.Invoice to InvoiceResponse DTOs
func ToListInvoiceResponse(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i])
	}
	return res
}
