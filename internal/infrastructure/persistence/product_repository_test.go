package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicehub/backend/internal/domain/shared"
)

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	product := createTestProduct(t, db, userID, "Copper Wire 10m", 25)

	found, err := repo.FindByIDForUser(ctx, userID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Copper Wire 10m", found.Name)
	assert.Equal(t, int64(25), found.Stock)

	found.Name = "Copper Wire 20m"
	require.NoError(t, repo.Save(ctx, found))

	updated, err := repo.FindByIDForUser(ctx, userID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Copper Wire 20m", updated.Name)
}

func TestGormProductRepository_UserScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	product := createTestProduct(t, db, userID, "Copper Wire 10m", 25)

	_, err := repo.FindByIDForUser(ctx, uuid.New(), product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.DeleteForUser(ctx, uuid.New(), product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_AddStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	product := createTestProduct(t, db, userID, "LED Bulb", 5)

	require.NoError(t, repo.AddStock(ctx, userID, product.ID, 20))

	found, err := repo.FindByIDForUser(ctx, userID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), found.Stock)

	assert.ErrorIs(t, repo.AddStock(ctx, userID, uuid.New(), 5), shared.ErrNotFound)
}

func TestGormProductRepository_CountLowStockForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	low := createTestProduct(t, db, userID, "LED Bulb", 2)
	require.NoError(t, low.SetMinStock(5))
	require.NoError(t, db.Save(low).Error)

	// No threshold configured, never counted as low.
	createTestProduct(t, db, userID, "Switch Board", 0)

	count, err := repo.CountLowStockForUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormProductRepository_SearchByNameForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	createTestProduct(t, db, userID, "Copper Wire 10m", 5)
	createTestProduct(t, db, userID, "Copper Wire 20m", 5)
	createTestProduct(t, db, userID, "LED Bulb", 5)

	results, err := repo.SearchByNameForUser(ctx, userID, "Copper", shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestGormProductRepository_FindAllForUser_Pagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	for _, name := range []string{"Bulb", "Fan", "Wire", "Switch", "Socket"} {
		createTestProduct(t, db, userID, name, 5)
	}

	page, err := repo.FindAllForUser(ctx, userID, shared.Filter{
		Page:     2,
		PageSize: 2,
		OrderBy:  "name",
		OrderDir: "asc",
	})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	count, err := repo.CountForUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestGormProductRepository_StatusFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	active := createTestProduct(t, db, userID, "Active Product", 5)
	_ = active

	inactive := createTestProduct(t, db, userID, "Inactive Product", 5)
	inactive.Deactivate()
	require.NoError(t, db.Save(inactive).Error)

	results, err := repo.FindAllForUser(ctx, userID, shared.Filter{
		Filters: map[string]interface{}{"status": "active"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Active Product", results[0].Name)
	assert.True(t, results[0].SellingRate.Equal(decimal.NewFromInt(250)))
}
