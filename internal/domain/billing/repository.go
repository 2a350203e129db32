package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicehub/backend/internal/domain/shared"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// Issue persists the invoice, its items and the stock decrements in
	// a single transaction. The invoice number is allocated from the
	// per-user fiscal-year sequence inside the same transaction, so a
	// failure at any step leaves no trace and burns no number.
	Issue(ctx context.Context, invoice *Invoice) error

	// FindByIDForUser finds an invoice with its items for a user
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Invoice, error)

	// FindByNumberForUser finds an invoice by its number for a user
	FindByNumberForUser(ctx context.Context, userID uuid.UUID, number string) (*Invoice, error)

	// FindAllForUser finds invoices for a user with filtering
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindByCustomerForUser finds invoices for a customer
	FindByCustomerForUser(ctx context.Context, userID, customerID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// Save updates an existing invoice (payment recording)
	Save(ctx context.Context, invoice *Invoice) error

	// DeleteForUser deletes an invoice and its items for a user.
	// Consumed stock is not returned.
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error

	// CountForUser counts invoices for a user with optional filters
	CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByPaymentStatus counts invoices in a payment state for a user
	CountByPaymentStatus(ctx context.Context, userID uuid.UUID, status PaymentStatus) (int64, error)

	// SumTotalsForUser sums invoice totals and received amounts for a user
	SumTotalsForUser(ctx context.Context, userID uuid.UUID) (total, received decimal.Decimal, err error)

	// RevenueForUser sums the totals of fully paid invoices for a user
	RevenueForUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)

	// FindRecentForUser returns the most recently issued invoices for a user
	FindRecentForUser(ctx context.Context, userID uuid.UUID, limit int) ([]Invoice, error)
}
