package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicehub/backend/internal/domain/shared"
)

// BillingTotals aggregates a customer's invoicing history.
type BillingTotals struct {
	InvoiceCount  int64
	TotalInvoiced decimal.Decimal
	TotalReceived decimal.Decimal
}

// Pending returns the outstanding balance.
func (t BillingTotals) Pending() decimal.Decimal {
	return t.TotalInvoiced.Sub(t.TotalReceived)
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByIDForUser finds a customer by ID for a user
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Customer, error)

	// FindAllForUser finds customers for a user with filtering
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// SearchByNameForUser finds customers whose name matches the query
	SearchByNameForUser(ctx context.Context, userID uuid.UUID, query string, filter shared.Filter) ([]Customer, error)

	// ExistsByMobileForUser checks if a customer with the mobile exists for a user,
	// optionally excluding one customer (for updates)
	ExistsByMobileForUser(ctx context.Context, userID uuid.UUID, mobile string, excludeID *uuid.UUID) (bool, error)

	// ExistsByEmailForUser checks if a customer with the email exists for a user,
	// optionally excluding one customer (for updates)
	ExistsByEmailForUser(ctx context.Context, userID uuid.UUID, email string, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// DeleteForUser deletes a customer for a user
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error

	// CountForUser counts customers for a user
	CountForUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// BillingTotalsForUser returns invoicing totals keyed by customer ID
	// for the given customers. Customers without invoices are absent
	// from the result.
	BillingTotalsForUser(ctx context.Context, userID uuid.UUID, customerIDs []uuid.UUID) (map[uuid.UUID]BillingTotals, error)
}
