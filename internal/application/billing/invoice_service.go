package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/catalog"
	"github.com/invoicehub/backend/internal/domain/partner"
	"github.com/invoicehub/backend/internal/domain/shared"
)

// InvoiceService handles invoice-related business operations
type InvoiceService struct {
	invoiceRepo  billing.InvoiceRepository
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// Create issues a new invoice for the user. The invoice number is
// allocated and the stock decremented inside one transaction; when a
// concurrent writer wins the race for a number the issuance is retried
// once with a freshly allocated number.
func (s *InvoiceService) Create(ctx context.Context, userID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	customerName := ""
	if req.CustomerID != nil {
		customer, err := s.customerRepo.FindByIDForUser(ctx, userID, *req.CustomerID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer not found")
			}
			return nil, err
		}
		customerName = customer.Name
	}

	invoice, err := billing.NewInvoice(userID, req.CustomerID, customerName, req.InvoiceDate, req.DueDate)
	if err != nil {
		return nil, err
	}

	// Lines are processed in request order. The same product may appear
	// on multiple lines; each line decrements stock independently.
	for _, itemReq := range req.Items {
		item, err := s.buildItem(ctx, userID, itemReq, req.InterState)
		if err != nil {
			return nil, err
		}
		invoice.AddItem(item)
	}

	if req.DiscountType != nil {
		value := decimal.Zero
		if req.DiscountValue != nil {
			value = *req.DiscountValue
		}
		if err := invoice.SetDiscount(billing.DiscountType(*req.DiscountType), value, req.DiscountNote); err != nil {
			return nil, err
		}
	}
	invoice.Notes = req.Notes

	if err := s.issueWithRetry(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("invoice issued",
		zap.String("user_id", userID.String()),
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Int("items", len(invoice.Items)))

	return ToInvoiceResponse(invoice), nil
}

func (s *InvoiceService) buildItem(ctx context.Context, userID uuid.UUID, req InvoiceItemRequest, interState bool) (*billing.InvoiceItem, error) {
	name := req.ProductName
	rate := decimal.Zero
	taxPercent := decimal.Zero

	if req.ProductID != nil {
		product, err := s.productRepo.FindByIDForUser(ctx, userID, *req.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
			}
			return nil, err
		}
		if name == "" {
			name = product.Name
		}
		rate = product.SellingRate
		taxPercent = product.TaxPercent
	}

	if req.SellingRate != nil {
		rate = *req.SellingRate
	}
	if req.TaxPercent != nil {
		taxPercent = *req.TaxPercent
	}

	return billing.NewInvoiceItem(req.ProductID, name, req.Quantity, rate, taxPercent, interState)
}

func (s *InvoiceService) issueWithRetry(ctx context.Context, invoice *billing.Invoice) error {
	err := s.invoiceRepo.Issue(ctx, invoice)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrDuplicateNumber) {
		return err
	}

	// A concurrent writer claimed the same number outside the sequence
	// (legacy or imported rows). One retry allocates the next value.
	s.logger.Warn("invoice number collision, retrying once",
		zap.String("invoice_number", invoice.InvoiceNumber))
	invoice.InvoiceNumber = ""
	return s.invoiceRepo.Issue(ctx, invoice)
}

// GetByID returns an invoice with its items
func (s *InvoiceService) GetByID(ctx context.Context, userID, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// List returns invoices for the user with pagination
func (s *InvoiceService) List(ctx context.Context, userID uuid.UUID, filter InvoiceListFilter) (*shared.Paginated[InvoiceListResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.SortBy != "" {
		f.OrderBy = filter.SortBy
		if filter.SortOrder != "" {
			f.OrderDir = filter.SortOrder
		}
	}
	if filter.PaymentStatus != "" {
		f.Filters["payment_status"] = filter.PaymentStatus
	}

	var invoices []billing.Invoice
	var err error
	if filter.CustomerID != nil {
		invoices, err = s.invoiceRepo.FindByCustomerForUser(ctx, userID, *filter.CustomerID, f)
	} else {
		invoices, err = s.invoiceRepo.FindAllForUser(ctx, userID, f)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.invoiceRepo.CountForUser(ctx, userID, f)
	if err != nil {
		return nil, err
	}

	items := make([]InvoiceListResponse, len(invoices))
	for i := range invoices {
		items[i] = ToInvoiceListResponse(&invoices[i])
	}
	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// RecordPayment records a payment against an invoice
func (s *InvoiceService) RecordPayment(ctx context.Context, userID, id uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := invoice.RecordPayment(req.Amount); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("amount", req.Amount.String()),
		zap.String("status", invoice.PaymentStatus.String()))

	return ToInvoiceResponse(invoice), nil
}

// Delete removes an invoice and its items. Stock consumed by the
// invoice is not returned to the catalog.
func (s *InvoiceService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.invoiceRepo.FindByIDForUser(ctx, userID, id); err != nil {
		return err
	}
	return s.invoiceRepo.DeleteForUser(ctx, userID, id)
}
