package printing

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
	"github.com/invoicehub/backend/internal/domain/identity"
	"github.com/invoicehub/backend/internal/domain/shared"
	infra "github.com/invoicehub/backend/internal/infrastructure/printing"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Issue(ctx context.Context, invoice *billing.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
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
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByCustomerForUser(ctx context.Context, userID, customerID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, userID, customerID, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
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
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func buildPrintableInvoice(t *testing.T, userID uuid.UUID) *billing.Invoice {
	t.Helper()

	invoice, err := billing.NewInvoice(userID, nil, "", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	item, err := billing.NewInvoiceItem(nil, "Steel Bucket", 2,
		decimal.NewFromInt(250), decimal.NewFromInt(18), false)
	require.NoError(t, err)
	invoice.AddItem(item)

	require.NoError(t, invoice.AssignNumber("INV-2024-25-0001"))
	return invoice
}

func TestPrintService_RenderInvoice(t *testing.T) {
	userID := uuid.New()
	invoice := buildPrintableInvoice(t, userID)

	seller, err := identity.NewUser("owner@shop.in", "secret-password", "Ravi Kumar")
	require.NoError(t, err)
	seller.BusinessName = "Kumar Hardware Stores"

	invoiceRepo := new(MockInvoiceRepository)
	userRepo := new(MockUserRepository)
	invoiceRepo.On("FindByIDForUser", mock.Anything, userID, invoice.ID).Return(invoice, nil)
	userRepo.On("FindByID", mock.Anything, userID).Return(seller, nil)

	renderer, err := infra.NewInvoiceRenderer()
	require.NoError(t, err)

	svc := NewPrintService(invoiceRepo, userRepo, renderer, zap.NewNop())

	html, err := svc.RenderInvoice(context.Background(), userID, invoice.ID)
	require.NoError(t, err)

	assert.Contains(t, html, "INV-2024-25-0001")
	assert.Contains(t, html, "Kumar Hardware Stores")
	assert.Contains(t, html, "Steel Bucket")
}

func TestPrintService_RenderInvoice_NotFound(t *testing.T) {
	userID := uuid.New()
	invoiceID := uuid.New()

	invoiceRepo := new(MockInvoiceRepository)
	userRepo := new(MockUserRepository)
	invoiceRepo.On("FindByIDForUser", mock.Anything, userID, invoiceID).Return(nil, shared.ErrNotFound)

	renderer, err := infra.NewInvoiceRenderer()
	require.NoError(t, err)

	svc := NewPrintService(invoiceRepo, userRepo, renderer, zap.NewNop())

	_, err = svc.RenderInvoice(context.Background(), userID, invoiceID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
