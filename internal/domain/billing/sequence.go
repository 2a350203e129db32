package billing

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceSequence tracks the last allocated invoice sequence per user
// and fiscal year. The row is incremented atomically inside the
// issuance transaction, so the row lock serializes concurrent
// allocations for the same (user, fiscal year) pair until commit.
type InvoiceSequence struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	FiscalYear string    `gorm:"type:varchar(10);primaryKey"`
	LastSeq    int64     `gorm:"not null;default:0"`
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (InvoiceSequence) TableName() string {
	return "invoice_sequences"
}
