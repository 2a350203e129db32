package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/catalog"
	"github.com/invoicehub/backend/internal/domain/partner"
)

// setupTestDB opens an in-memory database with the full schema. A
// single connection keeps concurrent transactions serialized the way
// the postgres row lock does in production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, stock int64) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct(userID, name, "pcs", decimal.NewFromInt(250), decimal.NewFromInt(18))
	require.NoError(t, err)
	require.NoError(t, product.SetStock(stock))
	require.NoError(t, db.Create(product).Error)
	return product
}

func createTestCustomer(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *partner.Customer {
	t.Helper()

	customer, err := partner.NewCustomer(userID, name, "", "")
	require.NoError(t, err)
	require.NoError(t, db.Create(customer).Error)
	return customer
}

// buildTestInvoice creates an unissued invoice with one line of the
// given product.
func buildTestInvoice(t *testing.T, userID uuid.UUID, product *catalog.Product, quantity int64, date time.Time) *billing.Invoice {
	t.Helper()

	invoice, err := billing.NewInvoice(userID, nil, "Walk-in", date, nil)
	require.NoError(t, err)

	item, err := billing.NewInvoiceItem(&product.ID, product.Name, quantity, product.SellingRate, product.TaxPercent, false)
	require.NoError(t, err)
	invoice.AddItem(item)
	return invoice
}
