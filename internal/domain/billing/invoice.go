package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicehub/backend/internal/domain/shared"
)

// PaymentStatus represents the payment state of an invoice
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// DiscountType represents how an invoice-level discount is expressed
type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "PERCENTAGE"
	DiscountTypeItemWise    DiscountType = "ITEM-WISE"
	DiscountTypeFixedAmount DiscountType = "FIXED-AMOUNT"
)

// IsValid checks if the value is a valid DiscountType
func (d DiscountType) IsValid() bool {
	switch d {
	case DiscountTypePercentage, DiscountTypeItemWise, DiscountTypeFixedAmount:
		return true
	}
	return false
}

// String returns the string representation of DiscountType
func (d DiscountType) String() string {
	return string(d)
}

// InvoiceItem represents a line item on an invoice. Product details are
// snapshotted at issuance time so later catalog edits never change a
// billed document.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int64           `gorm:"not null"`
	SellingRate decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxPercent  decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CGST        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SGST        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IGST        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Position    int             `gorm:"not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// NewInvoiceItem creates a line item and derives its tax split and
// total. Tax is split evenly into CGST and SGST for intra-state
// supplies; interStateTax moves the full amount to IGST instead.
func NewInvoiceItem(productID *uuid.UUID, productName string, quantity int64, sellingRate, taxPercent decimal.Decimal, interStateTax bool) (*InvoiceItem, error) {
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if sellingRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Selling rate cannot be negative")
	}
	if taxPercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TAX_PERCENT", "Tax percent cannot be negative")
	}

	base := sellingRate.Mul(decimal.NewFromInt(quantity))
	taxAmount := base.Mul(taxPercent).Div(decimal.NewFromInt(100)).Round(2)

	item := &InvoiceItem{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		SellingRate: sellingRate,
		TaxPercent:  taxPercent,
		TaxAmount:   taxAmount,
		LineTotal:   base.Add(taxAmount),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if interStateTax {
		item.IGST = taxAmount
	} else {
		half := taxAmount.Div(decimal.NewFromInt(2)).Round(2)
		item.CGST = half
		item.SGST = taxAmount.Sub(half)
	}
	return item, nil
}

// Invoice represents an issued invoice aggregate root. The invoice
// number is allocated by the repository inside the issuance
// transaction, not by the constructor.
type Invoice struct {
	shared.OwnedAggregateRoot
	InvoiceNumber  string          `gorm:"type:varchar(30);not null;index"`
	CustomerID     *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerName   string          `gorm:"type:varchar(200)"`
	InvoiceDate    time.Time       `gorm:"not null;index"`
	DueDate        *time.Time
	Items          []InvoiceItem   `gorm:"foreignKey:InvoiceID;references:ID"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxTotal       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CGSTTotal      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SGSTTotal      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IGSTTotal      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountType   *DiscountType   `gorm:"type:varchar(20)"`
	DiscountValue  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountNote   string          `gorm:"type:varchar(500)"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReceivedAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentStatus  PaymentStatus   `gorm:"type:varchar(20);not null;default:'unpaid'"`
	Notes          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new invoice for the given user. An invoice may
// be issued without a customer (walk-in sale) and with an empty item
// list.
func NewInvoice(userID uuid.UUID, customerID *uuid.UUID, customerName string, invoiceDate time.Time, dueDate *time.Time) (*Invoice, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if invoiceDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INVOICE_DATE", "Invoice date cannot be empty")
	}
	if dueDate != nil && dueDate.Before(invoiceDate) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be before the invoice date")
	}

	return &Invoice{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		CustomerID:         customerID,
		CustomerName:       customerName,
		InvoiceDate:        invoiceDate,
		DueDate:            dueDate,
		Items:              make([]InvoiceItem, 0),
		Subtotal:           decimal.Zero,
		TaxTotal:           decimal.Zero,
		CGSTTotal:          decimal.Zero,
		SGSTTotal:          decimal.Zero,
		IGSTTotal:          decimal.Zero,
		DiscountValue:      decimal.Zero,
		TotalAmount:        decimal.Zero,
		ReceivedAmount:     decimal.Zero,
		PaymentStatus:      PaymentStatusUnpaid,
	}, nil
}

// FiscalYear returns the fiscal year the invoice date falls in.
func (inv *Invoice) FiscalYear() FiscalYear {
	return FiscalYearOf(inv.InvoiceDate)
}

// AddItem appends a line item and recalculates the invoice totals.
// Items keep the order they were added in.
func (inv *Invoice) AddItem(item *InvoiceItem) {
	item.InvoiceID = inv.ID
	item.Position = len(inv.Items)
	inv.Items = append(inv.Items, *item)
	inv.recalculateTotals()
}

// SetDiscount records an invoice-level discount. The discount is kept
// for display and reporting; line totals already reflect any item-wise
// pricing the caller applied.
func (inv *Invoice) SetDiscount(discountType DiscountType, value decimal.Decimal, note string) error {
	if !discountType.IsValid() {
		return shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Discount type must be PERCENTAGE, ITEM-WISE or FIXED-AMOUNT")
	}
	if value.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount value cannot be negative")
	}

	inv.DiscountType = &discountType
	inv.DiscountValue = value
	inv.DiscountNote = note
	inv.UpdatedAt = time.Now()
	return nil
}

// AssignNumber sets the allocated invoice number. A number can only be
// assigned once.
func (inv *Invoice) AssignNumber(number string) error {
	if inv.InvoiceNumber != "" {
		return shared.NewDomainError("NUMBER_ALREADY_ASSIGNED", "Invoice number has already been assigned")
	}
	if _, _, err := ParseInvoiceNumber(number); err != nil {
		return err
	}
	inv.InvoiceNumber = number
	return nil
}

// RecordPayment adds a received amount and moves the payment status
// forward. Payments never exceed the invoice total.
func (inv *Invoice) RecordPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment amount must be positive")
	}
	received := inv.ReceivedAmount.Add(amount)
	if received.GreaterThan(inv.TotalAmount) {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment exceeds the outstanding invoice amount")
	}

	inv.ReceivedAmount = received
	if received.GreaterThanOrEqual(inv.TotalAmount) {
		inv.PaymentStatus = PaymentStatusPaid
	} else {
		inv.PaymentStatus = PaymentStatusPartial
	}
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// OutstandingAmount returns the unpaid remainder of the invoice.
func (inv *Invoice) OutstandingAmount() decimal.Decimal {
	return inv.TotalAmount.Sub(inv.ReceivedAmount)
}

func (inv *Invoice) recalculateTotals() {
	subtotal := decimal.Zero
	taxTotal := decimal.Zero
	cgst := decimal.Zero
	sgst := decimal.Zero
	igst := decimal.Zero
	for _, item := range inv.Items {
		subtotal = subtotal.Add(item.SellingRate.Mul(decimal.NewFromInt(item.Quantity)))
		taxTotal = taxTotal.Add(item.TaxAmount)
		cgst = cgst.Add(item.CGST)
		sgst = sgst.Add(item.SGST)
		igst = igst.Add(item.IGST)
	}
	inv.Subtotal = subtotal
	inv.TaxTotal = taxTotal
	inv.CGSTTotal = cgst
	inv.SGSTTotal = sgst
	inv.IGSTTotal = igst
	inv.TotalAmount = subtotal.Add(taxTotal)
	inv.UpdatedAt = time.Now()
}
