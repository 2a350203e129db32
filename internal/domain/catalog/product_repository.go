package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/invoicehub/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByIDForUser finds a product by ID for a user
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Product, error)

	// FindAllForUser finds products for a user with filtering
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Product, error)

	// SearchByNameForUser finds products whose name matches the query
	SearchByNameForUser(ctx context.Context, userID uuid.UUID, query string, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// DeleteForUser deletes a product for a user
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error

	// CountForUser counts products for a user
	CountForUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// CountLowStockForUser counts products at or below their alert threshold
	CountLowStockForUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// AddStock atomically increases the stock of a product
	AddStock(ctx context.Context, userID, id uuid.UUID, quantity int64) error
}
