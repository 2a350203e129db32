package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardSummary is a read model aggregating a user's billing
// position for the dashboard
type DashboardSummary struct {
	TotalInvoices    int64           `json:"total_invoices"`
	PaidInvoices     int64           `json:"paid_invoices"`
	UnpaidInvoices   int64           `json:"unpaid_invoices"`
	TotalBilled      decimal.Decimal `json:"total_billed"`
	TotalReceived    decimal.Decimal `json:"total_received"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	Revenue          decimal.Decimal `json:"revenue"` // Totals of fully paid invoices
	CustomerCount    int64           `json:"customer_count"`
	ProductCount     int64           `json:"product_count"`
	LowStockProducts int64           `json:"low_stock_products"`
}

// MonthlySales represents billed and received totals for one calendar month
type MonthlySales struct {
	Month         time.Time       `json:"month"` // First day of the month
	InvoiceCount  int64           `json:"invoice_count"`
	TotalBilled   decimal.Decimal `json:"total_billed"`
	TotalReceived decimal.Decimal `json:"total_received"`
}

// TopCustomer represents a customer ranked by billed amount
type TopCustomer struct {
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	InvoiceCount int64           `json:"invoice_count"`
	TotalBilled  decimal.Decimal `json:"total_billed"`
}

// DashboardRepository defines the interface for dashboard aggregation queries
type DashboardRepository interface {
	// MonthlySalesForUser returns per-month billing totals for the last
	// months calendar months, oldest first
	MonthlySalesForUser(ctx context.Context, userID uuid.UUID, months int) ([]MonthlySales, error)

	// TopCustomersForUser returns customers ranked by billed amount
	TopCustomersForUser(ctx context.Context, userID uuid.UUID, limit int) ([]TopCustomer, error)
}
