package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/invoicehub/backend/internal/domain/partner"
	"github.com/invoicehub/backend/internal/domain/shared"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByIDForUser finds a customer by ID for a user
func (r *GormCustomerRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*partner.Customer, error) {
	var customer partner.Customer
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAllForUser finds customers for a user with filtering
func (r *GormCustomerRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	var customers []partner.Customer
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&partner.Customer{}).Where("user_id = ?", userID),
		filter,
	)
	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// SearchByNameForUser finds customers whose name matches the query
func (r *GormCustomerRepository) SearchByNameForUser(ctx context.Context, userID uuid.UUID, search string, filter shared.Filter) ([]partner.Customer, error) {
	var customers []partner.Customer
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&partner.Customer{}).
			Where("user_id = ? AND name LIKE ?", userID, "%"+search+"%"),
		filter,
	)
	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// ExistsByMobileForUser checks if a customer with the mobile exists for a user
func (r *GormCustomerRepository) ExistsByMobileForUser(ctx context.Context, userID uuid.UUID, mobile string, excludeID *uuid.UUID) (bool, error) {
	if mobile == "" {
		return false, nil
	}
	query := r.db.WithContext(ctx).
		Model(&partner.Customer{}).
		Where("user_id = ? AND mobile = ?", userID, mobile)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByEmailForUser checks if a customer with the email exists for a user
func (r *GormCustomerRepository) ExistsByEmailForUser(ctx context.Context, userID uuid.UUID, email string, excludeID *uuid.UUID) (bool, error) {
	if email == "" {
		return false, nil
	}
	query := r.db.WithContext(ctx).
		Model(&partner.Customer{}).
		Where("user_id = ? AND email = ?", userID, strings.ToLower(email))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// DeleteForUser deletes a customer for a user. Issued invoices keep the
// snapshotted customer name.
func (r *GormCustomerRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&partner.Customer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForUser counts customers for a user
func (r *GormCustomerRepository) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Customer{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// BillingTotalsForUser aggregates invoice totals per customer from the
// invoices table. Walk-in invoices carry no customer reference and are
// never matched.
func (r *GormCustomerRepository) BillingTotalsForUser(ctx context.Context, userID uuid.UUID, customerIDs []uuid.UUID) (map[uuid.UUID]partner.BillingTotals, error) {
	totals := make(map[uuid.UUID]partner.BillingTotals, len(customerIDs))
	if len(customerIDs) == 0 {
		return totals, nil
	}

	var rows []struct {
		CustomerID    uuid.UUID
		InvoiceCount  int64
		TotalInvoiced decimal.Decimal
		TotalReceived decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Table("invoices").
		Select("customer_id, COUNT(*) AS invoice_count, COALESCE(SUM(total_amount), 0) AS total_invoiced, COALESCE(SUM(received_amount), 0) AS total_received").
		Where("user_id = ? AND customer_id IN ?", userID, customerIDs).
		Group("customer_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		totals[row.CustomerID] = partner.BillingTotals{
			InvoiceCount:  row.InvoiceCount,
			TotalInvoiced: row.TotalInvoiced,
			TotalReceived: row.TotalReceived,
		}
	}
	return totals, nil
}

// applyFilter applies filter options to the query
func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR mobile LIKE ? OR email LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "city":
			query = query.Where("city = ?", value)
		case "state":
			query = query.Where("state = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CustomerSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
