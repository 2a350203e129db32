package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/invoicehub/backend/internal/domain/shared"
)

// FiscalYear identifies a fiscal year running April 1 through March 31.
// The value is the calendar year the period starts in, so the period
// 2024-04-01 .. 2025-03-31 is FiscalYear(2024).
type FiscalYear int

// FiscalYearOf returns the fiscal year the given date falls in.
// Dates in January through March belong to the fiscal year that
// started the previous April.
func FiscalYearOf(t time.Time) FiscalYear {
	if t.Month() >= time.April {
		return FiscalYear(t.Year())
	}
	return FiscalYear(t.Year() - 1)
}

// String formats the fiscal year as "2024-25".
func (fy FiscalYear) String() string {
	return fmt.Sprintf("%d-%02d", int(fy), (int(fy)+1)%100)
}

const invoiceNumberPrefix = "INV"

// FormatInvoiceNumber builds the canonical invoice number for a fiscal
// year and sequence value, e.g. "INV-2024-25-0001". Sequences above
// 9999 widen naturally and stay unique.
func FormatInvoiceNumber(fy FiscalYear, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", invoiceNumberPrefix, fy, seq)
}

// ParseInvoiceNumber splits an invoice number into its fiscal year
// label and sequence value.
func ParseInvoiceNumber(number string) (string, int64, error) {
	parts := strings.Split(number, "-")
	if len(parts) != 4 || parts[0] != invoiceNumberPrefix {
		return "", 0, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number format is not recognized")
	}
	seq, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil || seq <= 0 {
		return "", 0, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number sequence is not valid")
	}
	return parts[1] + "-" + parts[2], seq, nil
}
