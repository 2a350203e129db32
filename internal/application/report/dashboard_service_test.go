package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/catalog"
	"github.com/invoicehub/backend/internal/domain/partner"
	"github.com/invoicehub/backend/internal/domain/report"
	"github.com/invoicehub/backend/internal/domain/shared"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Issue(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumberForUser(ctx context.Context, userID uuid.UUID, number string) (*billing.Invoice, error) {
	args := m.Called(ctx, userID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByCustomerForUser(ctx context.Context, userID, customerID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, userID, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) CountByPaymentStatus(ctx context.Context, userID uuid.UUID, status billing.PaymentStatus) (int64, error) {
	args := m.Called(ctx, userID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) SumTotalsForUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockInvoiceRepository) RevenueForUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInvoiceRepository) FindRecentForUser(ctx context.Context, userID uuid.UUID, limit int) ([]billing.Invoice, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SearchByNameForUser(ctx context.Context, userID uuid.UUID, query string, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, userID, query, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByMobileForUser(ctx context.Context, userID uuid.UUID, mobile string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, mobile, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByEmailForUser(ctx context.Context, userID uuid.UUID, email string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) BillingTotalsForUser(ctx context.Context, userID uuid.UUID, customerIDs []uuid.UUID) (map[uuid.UUID]partner.BillingTotals, error) {
	args := m.Called(ctx, userID, customerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]partner.BillingTotals), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) SearchByNameForUser(ctx context.Context, userID uuid.UUID, query string, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, userID, query, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountLowStockForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) AddStock(ctx context.Context, userID, id uuid.UUID, quantity int64) error {
	args := m.Called(ctx, userID, id, quantity)
	return args.Error(0)
}

type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) MonthlySalesForUser(ctx context.Context, userID uuid.UUID, months int) ([]report.MonthlySales, error) {
	args := m.Called(ctx, userID, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.MonthlySales), args.Error(1)
}

func (m *MockDashboardRepository) TopCustomersForUser(ctx context.Context, userID uuid.UUID, limit int) ([]report.TopCustomer, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.TopCustomer), args.Error(1)
}

func newTestDashboardService() (*DashboardService, *MockInvoiceRepository, *MockCustomerRepository, *MockProductRepository, *MockDashboardRepository) {
	invoiceRepo := new(MockInvoiceRepository)
	customerRepo := new(MockCustomerRepository)
	productRepo := new(MockProductRepository)
	dashboardRepo := new(MockDashboardRepository)
	svc := NewDashboardService(invoiceRepo, customerRepo, productRepo, dashboardRepo, zap.NewNop())
	return svc, invoiceRepo, customerRepo, productRepo, dashboardRepo
}

func TestDashboardService_Summary(t *testing.T) {
	svc, invoiceRepo, customerRepo, productRepo, _ := newTestDashboardService()
	userID := uuid.New()

	invoiceRepo.On("CountForUser", mock.Anything, userID, mock.Anything).Return(int64(42), nil)
	invoiceRepo.On("CountByPaymentStatus", mock.Anything, userID, billing.PaymentStatusPaid).Return(int64(30), nil)
	invoiceRepo.On("CountByPaymentStatus", mock.Anything, userID, billing.PaymentStatusUnpaid).Return(int64(8), nil)
	invoiceRepo.On("SumTotalsForUser", mock.Anything, userID).
		Return(decimal.NewFromInt(100000), decimal.NewFromInt(75000), nil)
	invoiceRepo.On("RevenueForUser", mock.Anything, userID).
		Return(decimal.NewFromInt(60000), nil)
	customerRepo.On("CountForUser", mock.Anything, userID).Return(int64(17), nil)
	productRepo.On("CountForUser", mock.Anything, userID).Return(int64(120), nil)
	productRepo.On("CountLowStockForUser", mock.Anything, userID).Return(int64(3), nil)

	summary, err := svc.Summary(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, int64(42), summary.TotalInvoices)
	assert.Equal(t, int64(30), summary.PaidInvoices)
	assert.Equal(t, int64(8), summary.UnpaidInvoices)
	assert.True(t, summary.TotalOutstanding.Equal(decimal.NewFromInt(25000)))
	// Revenue counts only fully paid invoices, not partial receipts.
	assert.True(t, summary.Revenue.Equal(decimal.NewFromInt(60000)))
	assert.Equal(t, int64(17), summary.CustomerCount)
	assert.Equal(t, int64(120), summary.ProductCount)
	assert.Equal(t, int64(3), summary.LowStockProducts)
}

func TestDashboardService_MonthlySales_ClampsRange(t *testing.T) {
	svc, _, _, _, dashboardRepo := newTestDashboardService()
	userID := uuid.New()

	dashboardRepo.On("MonthlySalesForUser", mock.Anything, userID, defaultSalesMonths).
		Return([]report.MonthlySales{}, nil).Once()
	dashboardRepo.On("MonthlySalesForUser", mock.Anything, userID, maxSalesMonths).
		Return([]report.MonthlySales{}, nil).Once()

	_, err := svc.MonthlySales(context.Background(), userID, 0)
	require.NoError(t, err)

	_, err = svc.MonthlySales(context.Background(), userID, 100)
	require.NoError(t, err)

	dashboardRepo.AssertExpectations(t)
}

func TestDashboardService_TopCustomers(t *testing.T) {
	svc, _, _, _, dashboardRepo := newTestDashboardService()
	userID := uuid.New()

	dashboardRepo.On("TopCustomersForUser", mock.Anything, userID, 5).Return([]report.TopCustomer{
		{CustomerID: uuid.New(), CustomerName: "Sharma Traders", InvoiceCount: 12, TotalBilled: decimal.NewFromInt(54000)},
	}, nil)

	top, err := svc.TopCustomers(context.Background(), userID, 0)

	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Sharma Traders", top[0].CustomerName)
}

func TestDashboardService_RecentInvoices(t *testing.T) {
	svc, invoiceRepo, _, _, _ := newTestDashboardService()
	userID := uuid.New()

	inv, err := billing.NewInvoice(userID, nil, "Walk-in", time.Now(), nil)
	require.NoError(t, err)
	inv.InvoiceNumber = "INV-2024-25-0001"

	invoiceRepo.On("FindRecentForUser", mock.Anything, userID, recentInvoiceLimit).
		Return([]billing.Invoice{*inv}, nil)

	recent, err := svc.RecentInvoices(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "INV-2024-25-0001", recent[0].InvoiceNumber)
}
