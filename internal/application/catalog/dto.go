package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicehub/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	Description  string           `json:"description" binding:"max=2000"`
	HSNCode      string           `json:"hsn_code" binding:"max=20"`
	Unit         string           `json:"unit" binding:"max=20"`
	SellingRate  decimal.Decimal  `json:"selling_rate"`
	PurchaseRate *decimal.Decimal `json:"purchase_rate"`
	TaxPercent   decimal.Decimal  `json:"tax_percent"`
	Stock        *int64           `json:"stock"`
	MinStock     *int64           `json:"min_stock"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description  *string          `json:"description" binding:"omitempty,max=2000"`
	HSNCode      *string          `json:"hsn_code" binding:"omitempty,max=20"`
	SellingRate  *decimal.Decimal `json:"selling_rate"`
	PurchaseRate *decimal.Decimal `json:"purchase_rate"`
	TaxPercent   *decimal.Decimal `json:"tax_percent"`
	Stock        *int64           `json:"stock"`
	MinStock     *int64           `json:"min_stock"`
}

// AddStockRequest represents a restock of a product
type AddStockRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	HSNCode      string          `json:"hsn_code,omitempty"`
	Unit         string          `json:"unit"`
	SellingRate  decimal.Decimal `json:"selling_rate"`
	PurchaseRate decimal.Decimal `json:"purchase_rate"`
	TaxPercent   decimal.Decimal `json:"tax_percent"`
	Stock        int64           `json:"stock"`
	MinStock     int64           `json:"min_stock"`
	LowStock     bool            `json:"low_stock"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		HSNCode:      p.HSNCode,
		Unit:         p.Unit,
		SellingRate:  p.SellingRate,
		PurchaseRate: p.PurchaseRate,
		TaxPercent:   p.TaxPercent,
		Stock:        p.Stock,
		MinStock:     p.MinStock,
		LowStock:     p.IsLowStock(),
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
