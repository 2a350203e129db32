package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicehub/backend/internal/domain/partner"
)

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	Mobile       string `json:"mobile" binding:"max=20"`
	Email        string `json:"email" binding:"omitempty,email"`
	Address      string `json:"address" binding:"max=2000"`
	City         string `json:"city" binding:"max=100"`
	State        string `json:"state" binding:"max=100"`
	PostalCode   string `json:"postal_code" binding:"max=20"`
	GSTIN        string `json:"gstin" binding:"max=20"`
	CustomerType string `json:"customer_type" binding:"max=20"`
	Notes        string `json:"notes" binding:"max=2000"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	Mobile       *string `json:"mobile" binding:"omitempty,max=20"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Address      *string `json:"address" binding:"omitempty,max=2000"`
	City         *string `json:"city" binding:"omitempty,max=100"`
	State        *string `json:"state" binding:"omitempty,max=100"`
	PostalCode   *string `json:"postal_code" binding:"omitempty,max=20"`
	GSTIN        *string `json:"gstin" binding:"omitempty,max=20"`
	CustomerType *string `json:"customer_type" binding:"omitempty,max=20"`
	Notes        *string `json:"notes" binding:"omitempty,max=2000"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Mobile       string    `json:"mobile,omitempty"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	PostalCode   string    `json:"postal_code,omitempty"`
	GSTIN        string    `json:"gstin,omitempty"`
	CustomerType string    `json:"customer_type"`
	Notes        string    `json:"notes,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CustomerListItem is a customer row in list responses, enriched with
// invoicing totals.
type CustomerListItem struct {
	CustomerResponse
	InvoiceCount  int64           `json:"invoice_count"`
	TotalInvoiced decimal.Decimal `json:"total_invoiced"`
	TotalReceived decimal.Decimal `json:"total_received"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

// CustomerListFilter represents filter options for customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(c *partner.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Mobile:       c.Mobile,
		Email:        c.Email,
		Address:      c.Address,
		City:         c.City,
		State:        c.State,
		PostalCode:   c.PostalCode,
		GSTIN:        c.GSTIN,
		CustomerType: c.CustomerType,
		Notes:        c.Notes,
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
