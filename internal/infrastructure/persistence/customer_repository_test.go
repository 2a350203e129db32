package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/partner"
	"github.com/invoicehub/backend/internal/domain/shared"
)

func TestGormCustomerRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	customer := createTestCustomer(t, db, userID, "Sharma Traders")

	found, err := repo.FindByIDForUser(ctx, userID, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sharma Traders", found.Name)

	_, err = repo.FindByIDForUser(ctx, uuid.New(), customer.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCustomerRepository_ExistsByMobileForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	customer, err := partner.NewCustomer(userID, "Sharma Traders", "+91 98765 43210", "")
	require.NoError(t, err)
	require.NoError(t, db.Create(customer).Error)

	exists, err := repo.ExistsByMobileForUser(ctx, userID, "+91 98765 43210", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	// Excluding the customer itself, as an update check would.
	exists, err = repo.ExistsByMobileForUser(ctx, userID, "+91 98765 43210", &customer.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	// The same mobile under a different user does not collide.
	exists, err = repo.ExistsByMobileForUser(ctx, uuid.New(), "+91 98765 43210", nil)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByMobileForUser(ctx, userID, "", nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormCustomerRepository_ExistsByEmailForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	customer, err := partner.NewCustomer(userID, "Sharma Traders", "", "billing@sharma.example")
	require.NoError(t, err)
	require.NoError(t, db.Create(customer).Error)

	exists, err := repo.ExistsByEmailForUser(ctx, userID, "Billing@Sharma.example", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmailForUser(ctx, userID, "other@sharma.example", nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormCustomerRepository_SearchByNameForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	createTestCustomer(t, db, userID, "Sharma Traders")
	createTestCustomer(t, db, userID, "Sharma Electricals")
	createTestCustomer(t, db, userID, "Gupta Hardware")

	results, err := repo.SearchByNameForUser(ctx, userID, "Sharma", shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestGormCustomerRepository_DeleteForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	customer := createTestCustomer(t, db, userID, "Sharma Traders")

	require.NoError(t, repo.DeleteForUser(ctx, userID, customer.ID))
	assert.ErrorIs(t, repo.DeleteForUser(ctx, userID, customer.ID), shared.ErrNotFound)

	count, err := repo.CountForUser(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGormCustomerRepository_BillingTotalsForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	billed := createTestCustomer(t, db, userID, "Sharma Traders")
	idle := createTestCustomer(t, db, userID, "Gupta Stores")
	product := createTestProduct(t, db, userID, "Steel Bucket", 100)
	date := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	for i, payment := range []int64{590, 200} {
		invoice, err := billing.NewInvoice(userID, &billed.ID, billed.Name, date, nil)
		require.NoError(t, err)
		item, err := billing.NewInvoiceItem(&product.ID, product.Name, 2, product.SellingRate, product.TaxPercent, false)
		require.NoError(t, err)
		invoice.AddItem(item)
		require.NoError(t, invoice.RecordPayment(decimal.NewFromInt(payment)))
		require.NoError(t, invoice.AssignNumber(billing.FormatInvoiceNumber(invoice.FiscalYear(), int64(i+1))))
		require.NoError(t, db.Create(invoice).Error)
	}

	totals, err := repo.BillingTotalsForUser(ctx, userID, []uuid.UUID{billed.ID, idle.ID})
	require.NoError(t, err)

	bt, ok := totals[billed.ID]
	require.True(t, ok)
	assert.Equal(t, int64(2), bt.InvoiceCount)
	// Two invoices of 2 x 250 at 18% tax.
	assert.True(t, bt.TotalInvoiced.Equal(decimal.NewFromInt(1180)), bt.TotalInvoiced.String())
	assert.True(t, bt.TotalReceived.Equal(decimal.NewFromInt(790)), bt.TotalReceived.String())
	assert.True(t, bt.Pending().Equal(decimal.NewFromInt(390)), bt.Pending().String())

	// No invoices, no row.
	_, ok = totals[idle.ID]
	assert.False(t, ok)

	totals, err = repo.BillingTotalsForUser(ctx, userID, nil)
	require.NoError(t, err)
	assert.Empty(t, totals)
}
