package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/report"
)

// GormDashboardRepository implements DashboardRepository using GORM
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// MonthlySalesForUser returns per-month billing totals for the last
// months calendar months, oldest first. Months without invoices are
// included with zero totals. Bucketing happens in Go so the same query
// runs on every supported driver. Months are UTC months; invoice dates
// are stored with their zone and must be normalized before keying, or
// a boundary invoice lands in the neighboring bucket.
func (r *GormDashboardRepository) MonthlySalesForUser(ctx context.Context, userID uuid.UUID, months int) ([]report.MonthlySales, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(months - 1), 0)

	var rows []struct {
		InvoiceDate    time.Time
		TotalAmount    decimal.Decimal
		ReceivedAmount decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Select("invoice_date, total_amount, received_amount").
		Where("user_id = ? AND invoice_date >= ?", userID, start).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	buckets := make(map[time.Time]*report.MonthlySales, months)
	result := make([]report.MonthlySales, months)
	for i := 0; i < months; i++ {
		month := start.AddDate(0, i, 0)
		result[i] = report.MonthlySales{
			Month:         month,
			TotalBilled:   decimal.Zero,
			TotalReceived: decimal.Zero,
		}
		buckets[month] = &result[i]
	}

	for _, row := range rows {
		invoiceDate := row.InvoiceDate.UTC()
		month := time.Date(invoiceDate.Year(), invoiceDate.Month(), 1, 0, 0, 0, 0, time.UTC)
		bucket, ok := buckets[month]
		if !ok {
			continue
		}
		bucket.InvoiceCount++
		bucket.TotalBilled = bucket.TotalBilled.Add(row.TotalAmount)
		bucket.TotalReceived = bucket.TotalReceived.Add(row.ReceivedAmount)
	}
	return result, nil
}

// TopCustomersForUser returns customers ranked by billed amount.
// Walk-in invoices without a customer are excluded.
func (r *GormDashboardRepository) TopCustomersForUser(ctx context.Context, userID uuid.UUID, limit int) ([]report.TopCustomer, error) {
	var rows []struct {
		CustomerID   uuid.UUID
		CustomerName string
		InvoiceCount int64
		TotalBilled  decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Select(`customer_id,
			MAX(customer_name) AS customer_name,
			COUNT(*) AS invoice_count,
			COALESCE(SUM(total_amount), 0) AS total_billed`).
		Where("user_id = ? AND customer_id IS NOT NULL", userID).
		Group("customer_id").
		Order("total_billed DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	top := make([]report.TopCustomer, len(rows))
	for i, row := range rows {
		top[i] = report.TopCustomer{
			CustomerID:   row.CustomerID,
			CustomerName: row.CustomerName,
			InvoiceCount: row.InvoiceCount,
			TotalBilled:  row.TotalBilled,
		}
	}
	return top, nil
}

// Ensure GormDashboardRepository implements DashboardRepository
var _ report.DashboardRepository = (*GormDashboardRepository)(nil)
