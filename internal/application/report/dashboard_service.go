package report

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appbilling "github.com/invoicehub/backend/internal/application/billing"
	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/catalog"
	"github.com/invoicehub/backend/internal/domain/partner"
	"github.com/invoicehub/backend/internal/domain/report"
	"github.com/invoicehub/backend/internal/domain/shared"
)

const (
	defaultSalesMonths      = 6
	maxSalesMonths          = 24
	defaultTopCustomerLimit = 5
	maxTopCustomerLimit     = 20
	recentInvoiceLimit      = 5
)

// DashboardService aggregates billing, catalog and partner data into
// dashboard read models.
type DashboardService struct {
	invoiceRepo   billing.InvoiceRepository
	customerRepo  partner.CustomerRepository
	productRepo   catalog.ProductRepository
	dashboardRepo report.DashboardRepository
	logger        *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	invoiceRepo billing.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	dashboardRepo report.DashboardRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		invoiceRepo:   invoiceRepo,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		dashboardRepo: dashboardRepo,
		logger:        logger,
	}
}

// Summary returns the headline figures for a user's dashboard.
func (s *DashboardService) Summary(ctx context.Context, userID uuid.UUID) (*report.DashboardSummary, error) {
	totalInvoices, err := s.invoiceRepo.CountForUser(ctx, userID, shared.Filter{})
	if err != nil {
		return nil, err
	}

	paidInvoices, err := s.invoiceRepo.CountByPaymentStatus(ctx, userID, billing.PaymentStatusPaid)
	if err != nil {
		return nil, err
	}

	unpaidInvoices, err := s.invoiceRepo.CountByPaymentStatus(ctx, userID, billing.PaymentStatusUnpaid)
	if err != nil {
		return nil, err
	}

	totalBilled, totalReceived, err := s.invoiceRepo.SumTotalsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	revenue, err := s.invoiceRepo.RevenueForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	customerCount, err := s.customerRepo.CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	productCount, err := s.productRepo.CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.CountLowStockForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &report.DashboardSummary{
		TotalInvoices:    totalInvoices,
		PaidInvoices:     paidInvoices,
		UnpaidInvoices:   unpaidInvoices,
		TotalBilled:      totalBilled,
		TotalReceived:    totalReceived,
		TotalOutstanding: totalBilled.Sub(totalReceived),
		Revenue:          revenue,
		CustomerCount:    customerCount,
		ProductCount:     productCount,
		LowStockProducts: lowStock,
	}, nil
}

// MonthlySales returns per-month billing totals, oldest first.
func (s *DashboardService) MonthlySales(ctx context.Context, userID uuid.UUID, months int) ([]report.MonthlySales, error) {
	if months <= 0 {
		months = defaultSalesMonths
	}
	if months > maxSalesMonths {
		months = maxSalesMonths
	}
	return s.dashboardRepo.MonthlySalesForUser(ctx, userID, months)
}

// TopCustomers returns customers ranked by billed amount.
func (s *DashboardService) TopCustomers(ctx context.Context, userID uuid.UUID, limit int) ([]report.TopCustomer, error) {
	if limit <= 0 {
		limit = defaultTopCustomerLimit
	}
	if limit > maxTopCustomerLimit {
		limit = maxTopCustomerLimit
	}
	return s.dashboardRepo.TopCustomersForUser(ctx, userID, limit)
}

// RecentInvoices returns the latest invoices for the dashboard feed.
func (s *DashboardService) RecentInvoices(ctx context.Context, userID uuid.UUID) ([]appbilling.InvoiceListResponse, error) {
	invoices, err := s.invoiceRepo.FindRecentForUser(ctx, userID, recentInvoiceLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]appbilling.InvoiceListResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, appbilling.ToInvoiceListResponse(&invoices[i]))
	}
	return responses, nil
}
