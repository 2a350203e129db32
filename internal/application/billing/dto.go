package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicehub/backend/internal/domain/billing"
)

// InvoiceItemRequest represents one line on an invoice being issued.
// A line either references a catalog product or carries its own name
// and rate for ad-hoc charges.
type InvoiceItemRequest struct {
	ProductID   *uuid.UUID       `json:"product_id"`
	ProductName string           `json:"product_name" binding:"max=200"`
	Quantity    int64            `json:"quantity" binding:"required,min=1"`
	SellingRate *decimal.Decimal `json:"selling_rate"`
	TaxPercent  *decimal.Decimal `json:"tax_percent"`
}

// CreateInvoiceRequest represents a request to issue an invoice
type CreateInvoiceRequest struct {
	CustomerID    *uuid.UUID           `json:"customer_id"`
	InvoiceDate   time.Time            `json:"invoice_date" binding:"required"`
	DueDate       *time.Time           `json:"due_date"`
	Items         []InvoiceItemRequest `json:"items" binding:"dive"`
	DiscountType  *string              `json:"discount_type" binding:"omitempty,discount_type"`
	DiscountValue *decimal.Decimal     `json:"discount_value"`
	DiscountNote  string               `json:"discount_note" binding:"max=500"`
	InterState    bool                 `json:"inter_state"`
	Notes         string               `json:"notes" binding:"max=2000"`
}

// RecordPaymentRequest represents a payment against an invoice
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// InvoiceItemResponse represents an invoice line in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	SellingRate decimal.Decimal `json:"selling_rate"`
	TaxPercent  decimal.Decimal `json:"tax_percent"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	CGST        decimal.Decimal `json:"cgst"`
	SGST        decimal.Decimal `json:"sgst"`
	IGST        decimal.Decimal `json:"igst"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID             uuid.UUID             `json:"id"`
	InvoiceNumber  string                `json:"invoice_number"`
	CustomerID     *uuid.UUID            `json:"customer_id,omitempty"`
	CustomerName   string                `json:"customer_name,omitempty"`
	InvoiceDate    time.Time             `json:"invoice_date"`
	DueDate        *time.Time            `json:"due_date,omitempty"`
	Items          []InvoiceItemResponse `json:"items"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxTotal       decimal.Decimal       `json:"tax_total"`
	CGSTTotal      decimal.Decimal       `json:"cgst_total"`
	SGSTTotal      decimal.Decimal       `json:"sgst_total"`
	IGSTTotal      decimal.Decimal       `json:"igst_total"`
	DiscountType   *string               `json:"discount_type,omitempty"`
	DiscountValue  decimal.Decimal       `json:"discount_value"`
	DiscountNote   string                `json:"discount_note,omitempty"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	ReceivedAmount decimal.Decimal       `json:"received_amount"`
	PaymentStatus  string                `json:"payment_status"`
	Notes          string                `json:"notes,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// InvoiceListResponse represents a list item for invoices
type InvoiceListResponse struct {
	ID             uuid.UUID       `json:"id"`
	InvoiceNumber  string          `json:"invoice_number"`
	CustomerName   string          `json:"customer_name,omitempty"`
	InvoiceDate    time.Time       `json:"invoice_date"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	ReceivedAmount decimal.Decimal `json:"received_amount"`
	PaymentStatus  string          `json:"payment_status"`
	ItemCount      int             `json:"item_count"`
	CreatedAt      time.Time       `json:"created_at"`
}

// InvoiceListFilter represents filter options for invoice list
type InvoiceListFilter struct {
	CustomerID    *uuid.UUID `form:"customer_id"`
	PaymentStatus string     `form:"payment_status" binding:"omitempty,oneof=unpaid partial paid"`
	Page          int        `form:"page" binding:"min=0"`
	PageSize      int        `form:"page_size" binding:"min=0,max=100"`
	SortBy        string     `form:"sort_by" binding:"omitempty,oneof=invoice_date invoice_number total_amount created_at"`
	SortOrder     string     `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(inv *billing.Invoice) *InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			SellingRate: item.SellingRate,
			TaxPercent:  item.TaxPercent,
			TaxAmount:   item.TaxAmount,
			CGST:        item.CGST,
			SGST:        item.SGST,
			IGST:        item.IGST,
			LineTotal:   item.LineTotal,
		}
	}

	var discountType *string
	if inv.DiscountType != nil {
		s := inv.DiscountType.String()
		discountType = &s
	}

	return &InvoiceResponse{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		CustomerID:     inv.CustomerID,
		CustomerName:   inv.CustomerName,
		InvoiceDate:    inv.InvoiceDate,
		DueDate:        inv.DueDate,
		Items:          items,
		Subtotal:       inv.Subtotal,
		TaxTotal:       inv.TaxTotal,
		CGSTTotal:      inv.CGSTTotal,
		SGSTTotal:      inv.SGSTTotal,
		IGSTTotal:      inv.IGSTTotal,
		DiscountType:   discountType,
		DiscountValue:  inv.DiscountValue,
		DiscountNote:   inv.DiscountNote,
		TotalAmount:    inv.TotalAmount,
		ReceivedAmount: inv.ReceivedAmount,
		PaymentStatus:  inv.PaymentStatus.String(),
		Notes:          inv.Notes,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

// ToInvoiceListResponse converts a domain invoice to a list item DTO
func ToInvoiceListResponse(inv *billing.Invoice) InvoiceListResponse {
	return InvoiceListResponse{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		CustomerName:   inv.CustomerName,
		InvoiceDate:    inv.InvoiceDate,
		TotalAmount:    inv.TotalAmount,
		ReceivedAmount: inv.ReceivedAmount,
		PaymentStatus:  inv.PaymentStatus.String(),
		ItemCount:      len(inv.Items),
		CreatedAt:      inv.CreatedAt,
	}
}
