package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invoicehub/backend/internal/domain/shared"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// DefaultCustomerType is the classification applied when none is given.
const DefaultCustomerType = "Regular"

var (
	mobileRegex = regexp.MustCompile(`^\+?[0-9][0-9\s-]{6,19}$`)
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Customer represents a billing customer belonging to a user
// It is the aggregate root for customer-related operations
type Customer struct {
	shared.OwnedAggregateRoot
	Name       string         `gorm:"type:varchar(200);not null;index"`
	Mobile     string         `gorm:"type:varchar(20);index"`
	Email      string         `gorm:"type:varchar(200);index"`
	Address    string         `gorm:"type:text"`
	City       string         `gorm:"type:varchar(100)"`
	State      string         `gorm:"type:varchar(100)"`
	PostalCode string         `gorm:"type:varchar(20)"`
	GSTIN        string         `gorm:"type:varchar(20)"` // GST registration number, printed on invoices
	CustomerType string         `gorm:"type:varchar(20);not null;default:'Regular'"`
	Notes        string         `gorm:"type:text"`
	Status       CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields. Mobile and
// email are optional but validated when present; uniqueness per user is
// enforced by the service against the repository.
func NewCustomer(userID uuid.UUID, name, mobile, email string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	mobile = strings.TrimSpace(mobile)
	if mobile != "" && !mobileRegex.MatchString(mobile) {
		return nil, shared.NewDomainError("INVALID_MOBILE", "Mobile number format is not valid")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && !emailRegex.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email format is not valid")
	}

	return &Customer{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Name:               name,
		Mobile:             mobile,
		Email:              email,
		CustomerType:       DefaultCustomerType,
		Status:             CustomerStatusActive,
	}, nil
}

// Update updates the customer's basic information
func (c *Customer) Update(name, mobile, email string) error {
	name = strings.TrimSpace(name)
	if err := validateCustomerName(name); err != nil {
		return err
	}
	mobile = strings.TrimSpace(mobile)
	if mobile != "" && !mobileRegex.MatchString(mobile) {
		return shared.NewDomainError("INVALID_MOBILE", "Mobile number format is not valid")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is not valid")
	}

	c.Name = name
	c.Mobile = mobile
	c.Email = email
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetAddress updates the customer's address fields
func (c *Customer) SetAddress(address, city, state, postalCode string) {
	c.Address = address
	c.City = city
	c.State = state
	c.PostalCode = postalCode
	c.UpdatedAt = time.Now()
}

// SetGSTIN sets the customer's GST registration number
func (c *Customer) SetGSTIN(gstin string) error {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if gstin != "" && len(gstin) != 15 {
		return shared.NewDomainError("INVALID_GSTIN", "GSTIN must be 15 characters")
	}

	c.GSTIN = gstin
	c.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the customer as inactive
func (c *Customer) Deactivate() {
	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}
