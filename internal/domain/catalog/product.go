package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicehub/backend/internal/domain/shared"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product represents a sellable product in a user's catalog
// It is the aggregate root for product-related operations
type Product struct {
	shared.OwnedAggregateRoot
	Name         string          `gorm:"type:varchar(200);not null;index"`
	Description  string          `gorm:"type:text"`
	HSNCode      string          `gorm:"type:varchar(20)"` // HSN/SAC classification code printed on invoices
	Unit         string          `gorm:"type:varchar(20);not null;default:'pcs'"`
	SellingRate  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PurchaseRate decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxPercent   decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"` // GST rate applied when billed
	Stock        int64           `gorm:"not null;default:0"`
	MinStock     int64           `gorm:"not null;default:0"` // Low stock alert threshold
	Status       ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(userID uuid.UUID, name, unit string, sellingRate, taxPercent decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if sellingRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Selling rate cannot be negative")
	}
	if taxPercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TAX_PERCENT", "Tax percent cannot be negative")
	}
	if unit == "" {
		unit = "pcs"
	}

	return &Product{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Name:               name,
		Unit:               unit,
		SellingRate:        sellingRate,
		PurchaseRate:       decimal.Zero,
		TaxPercent:         taxPercent,
		Status:             ProductStatusActive,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetRates updates the selling and purchase rates
func (p *Product) SetRates(sellingRate, purchaseRate decimal.Decimal) error {
	if sellingRate.IsNegative() || purchaseRate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Rates cannot be negative")
	}

	p.SellingRate = sellingRate
	p.PurchaseRate = purchaseRate
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetTaxPercent updates the GST rate
func (p *Product) SetTaxPercent(taxPercent decimal.Decimal) error {
	if taxPercent.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_PERCENT", "Tax percent cannot be negative")
	}

	p.TaxPercent = taxPercent
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetStock replaces the stock level with an absolute quantity.
// Decrements during invoice issuance go through the repository so the
// stock-sufficiency check and the write are a single statement.
func (p *Product) SetStock(quantity int64) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	p.Stock = quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetMinStock sets the low stock alert threshold
func (p *Product) SetMinStock(quantity int64) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Minimum stock cannot be negative")
	}

	p.MinStock = quantity
	p.UpdatedAt = time.Now()
	return nil
}

// IsLowStock reports whether the stock has fallen to the alert threshold
func (p *Product) IsLowStock() bool {
	return p.MinStock > 0 && p.Stock <= p.MinStock
}

// Deactivate marks the product as no longer sellable
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate marks the product as sellable again
func (p *Product) Activate() {
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
