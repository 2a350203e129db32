package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/shared"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Issue persists the invoice in a single transaction: the invoice number
// is allocated from the per-user fiscal-year sequence, the invoice and
// its items are inserted, and stock is decremented for every product
// line. The sequence row stays locked until commit, so concurrent
// issuances for the same user and fiscal year serialize on it. Any
// failure rolls the whole transaction back, leaving no invoice, no
// stock change and no burned number.
func (r *GormInvoiceRepository) Issue(ctx context.Context, invoice *billing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if invoice.InvoiceNumber == "" {
			number, err := r.allocateNumber(tx, invoice.UserID, invoice.FiscalYear())
			if err != nil {
				return err
			}
			if err := invoice.AssignNumber(number); err != nil {
				return err
			}
		}

		if err := tx.Create(invoice).Error; err != nil {
			if isUniqueViolation(err) {
				return shared.ErrDuplicateNumber
			}
			return err
		}

		for i := range invoice.Items {
			item := &invoice.Items[i]
			if item.ProductID == nil {
				continue
			}
			if err := decrementStock(tx, invoice.UserID, *item.ProductID, item.ProductName, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

// allocateNumber advances the sequence row for the user's fiscal year
// and returns the formatted invoice number. A single upsert creates the
// row on the fiscal year's first invoice and increments it afterwards.
// One statement keeps the transaction valid even when two issuers race
// on the first insert; a plain INSERT losing that race would abort the
// whole transaction on postgres. The updated row stays locked until
// commit, so concurrent issuers for the same user serialize here.
func (r *GormInvoiceRepository) allocateNumber(tx *gorm.DB, userID uuid.UUID, fy billing.FiscalYear) (string, error) {
	var lastSeq int64
	if err := tx.Raw(
		`INSERT INTO invoice_sequences (user_id, fiscal_year, last_seq, updated_at)
			VALUES (?, ?, 1, ?)
			ON CONFLICT (user_id, fiscal_year)
			DO UPDATE SET last_seq = invoice_sequences.last_seq + 1, updated_at = ?
			RETURNING last_seq`,
		userID, fy.String(), time.Now(), time.Now(),
	).Scan(&lastSeq).Error; err != nil {
		return "", err
	}
	return billing.FormatInvoiceNumber(fy, lastSeq), nil
}

// decrementStock conditionally reduces a product's stock. The WHERE
// clause guards against going negative, so a sold-out product makes the
// update match zero rows instead of corrupting the count. The error
// names the product so a multi-line invoice failure is actionable.
func decrementStock(tx *gorm.DB, userID, productID uuid.UUID, productName string, quantity int64) error {
	result := tx.Exec(
		`UPDATE products SET stock = stock - ?, updated_at = ? WHERE id = ? AND user_id = ? AND stock >= ?`,
		quantity, time.Now(), productID, userID, quantity,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.ErrInsufficientStock.Code,
			"Insufficient stock for product "+productName)
	}
	return nil
}

// isUniqueViolation reports whether err is a unique constraint
// violation from any of the supported drivers.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	// gorm.io/driver/sqlite wraps mattn errors as plain strings
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// FindByIDForUser finds an invoice with its items for a user
func (r *GormInvoiceRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ? AND id = ?", userID, id).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByNumberForUser finds an invoice by its number for a user
func (r *GormInvoiceRepository) FindByNumberForUser(ctx context.Context, userID uuid.UUID, number string) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ? AND invoice_number = ?", userID, number).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAllForUser finds invoices for a user with filtering
func (r *GormInvoiceRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&billing.Invoice{}).Where("user_id = ?", userID),
		filter,
	)
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByCustomerForUser finds invoices for a customer
func (r *GormInvoiceRepository) FindByCustomerForUser(ctx context.Context, userID, customerID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&billing.Invoice{}).
			Where("user_id = ? AND customer_id = ?", userID, customerID),
		filter,
	)
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save updates an existing invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	return r.db.WithContext(ctx).Omit("Items").Save(invoice).Error
}

// DeleteForUser deletes an invoice and its items for a user.
// Consumed stock is not returned.
func (r *GormInvoiceRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND id = ?", userID, id).Delete(&billing.Invoice{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("invoice_id = ?", id).Delete(&billing.InvoiceItem{}).Error
	})
}

// CountForUser counts invoices for a user with optional filters
func (r *GormInvoiceRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&billing.Invoice{}).Where("user_id = ?", userID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByPaymentStatus counts invoices in a payment state for a user
func (r *GormInvoiceRepository) CountByPaymentStatus(ctx context.Context, userID uuid.UUID, status billing.PaymentStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("user_id = ? AND payment_status = ?", userID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumTotalsForUser sums invoice totals and received amounts for a user
func (r *GormInvoiceRepository) SumTotalsForUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		Total    decimal.Decimal
		Received decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Select("COALESCE(SUM(total_amount), 0) AS total, COALESCE(SUM(received_amount), 0) AS received").
		Where("user_id = ?", userID).
		Scan(&row).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return row.Total, row.Received, nil
}

// RevenueForUser sums the totals of fully paid invoices. Partial
// payments contribute to received amounts, not revenue.
func (r *GormInvoiceRepository) RevenueForUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Revenue decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue").
		Where("user_id = ? AND payment_status = ?", userID, billing.PaymentStatusPaid).
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Revenue, nil
}

// FindRecentForUser returns the most recently issued invoices for a user
func (r *GormInvoiceRepository) FindRecentForUser(ctx context.Context, userID uuid.UUID, limit int) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// applyFilter applies filter options to the query
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InvoiceSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("invoice_number LIKE ? OR customer_name LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "date_from":
			query = query.Where("invoice_date >= ?", value)
		case "date_to":
			query = query.Where("invoice_date <= ?", value)
		}
	}
	return query
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
