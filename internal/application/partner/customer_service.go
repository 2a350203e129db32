package partner

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invoicehub/backend/internal/domain/partner"
	"github.com/invoicehub/backend/internal/domain/shared"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create creates a new customer. Mobile and email must be unique among
// the user's customers.
func (s *CustomerService) Create(ctx context.Context, userID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	if err := s.checkDuplicates(ctx, userID, req.Mobile, req.Email, nil); err != nil {
		return nil, err
	}

	customer, err := partner.NewCustomer(userID, req.Name, req.Mobile, req.Email)
	if err != nil {
		return nil, err
	}

	if req.Address != "" || req.City != "" || req.State != "" || req.PostalCode != "" {
		customer.SetAddress(req.Address, req.City, req.State, req.PostalCode)
	}
	if req.GSTIN != "" {
		if err := customer.SetGSTIN(req.GSTIN); err != nil {
			return nil, err
		}
	}
	if req.CustomerType != "" {
		customer.CustomerType = req.CustomerType
	}
	customer.Notes = req.Notes

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("user_id", userID.String()),
		zap.String("customer_id", customer.ID.String()))

	return ToCustomerResponse(customer), nil
}

// Update updates a customer
func (s *CustomerService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	name := customer.Name
	mobile := customer.Mobile
	email := customer.Email
	if req.Name != nil {
		name = *req.Name
	}
	if req.Mobile != nil {
		mobile = *req.Mobile
	}
	if req.Email != nil {
		email = *req.Email
	}

	if err := s.checkDuplicates(ctx, userID, mobile, email, &id); err != nil {
		return nil, err
	}
	if err := customer.Update(name, mobile, email); err != nil {
		return nil, err
	}

	if req.Address != nil || req.City != nil || req.State != nil || req.PostalCode != nil {
		address := customer.Address
		city := customer.City
		state := customer.State
		postal := customer.PostalCode
		if req.Address != nil {
			address = *req.Address
		}
		if req.City != nil {
			city = *req.City
		}
		if req.State != nil {
			state = *req.State
		}
		if req.PostalCode != nil {
			postal = *req.PostalCode
		}
		customer.SetAddress(address, city, state, postal)
	}
	if req.GSTIN != nil {
		if err := customer.SetGSTIN(*req.GSTIN); err != nil {
			return nil, err
		}
	}
	if req.CustomerType != nil {
		customer.CustomerType = *req.CustomerType
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// GetByID returns a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, userID, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// List returns customers for the user with pagination. Each row carries
// the customer's invoicing totals and outstanding balance.
func (s *CustomerService) List(ctx context.Context, userID uuid.UUID, filter CustomerListFilter) (*shared.Paginated[CustomerListItem], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}

	var customers []partner.Customer
	var err error
	if filter.Search != "" {
		customers, err = s.customerRepo.SearchByNameForUser(ctx, userID, filter.Search, f)
	} else {
		customers, err = s.customerRepo.FindAllForUser(ctx, userID, f)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.customerRepo.CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(customers))
	for i := range customers {
		ids[i] = customers[i].ID
	}
	totals, err := s.customerRepo.BillingTotalsForUser(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerListItem, len(customers))
	for i := range customers {
		bt := totals[customers[i].ID]
		items[i] = CustomerListItem{
			CustomerResponse: *ToCustomerResponse(&customers[i]),
			InvoiceCount:     bt.InvoiceCount,
			TotalInvoiced:    bt.TotalInvoiced,
			TotalReceived:    bt.TotalReceived,
			PendingAmount:    bt.Pending(),
		}
	}
	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// Delete removes a customer. Invoices already issued to the customer
// keep their snapshotted name.
func (s *CustomerService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByIDForUser(ctx, userID, id); err != nil {
		return err
	}
	return s.customerRepo.DeleteForUser(ctx, userID, id)
}

func (s *CustomerService) checkDuplicates(ctx context.Context, userID uuid.UUID, mobile, email string, excludeID *uuid.UUID) error {
	mobile = strings.TrimSpace(mobile)
	if mobile != "" {
		exists, err := s.customerRepo.ExistsByMobileForUser(ctx, userID, mobile, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "A customer with this mobile number already exists")
		}
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		exists, err := s.customerRepo.ExistsByEmailForUser(ctx, userID, email, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "A customer with this email already exists")
		}
	}
	return nil
}
