package printing

import (
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// templateFuncs returns the function map available to invoice templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatMoney":   formatMoney,
		"formatDate":    formatDate,
		"formatPercent": formatPercent,
		"amountInWords": amountInWords,
		"add1":          func(i int) int { return i + 1 },
	}
}

// formatMoney formats a decimal value with the rupee symbol and Indian
// digit grouping. Example: 1234567.50 -> "₹12,34,567.50"
func formatMoney(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Abs()
	}

	parts := strings.Split(v.StringFixed(2), ".")
	intPart := parts[0]
	decPart := parts[1]

	// Indian grouping: the last three digits, then pairs.
	var groups []string
	if len(intPart) > 3 {
		groups = append(groups, intPart[len(intPart)-3:])
		rest := intPart[:len(intPart)-3]
		for len(rest) > 2 {
			groups = append([]string{rest[len(rest)-2:]}, groups...)
			rest = rest[:len(rest)-2]
		}
		groups = append([]string{rest}, groups...)
	} else {
		groups = []string{intPart}
	}

	return sign + "₹" + strings.Join(groups, ",") + "." + decPart
}

// formatDate formats a date the way invoices print it.
// Example: 2024-06-10 -> "10 Jun 2024"
func formatDate(v interface{}) string {
	var t time.Time
	switch val := v.(type) {
	case time.Time:
		t = val
	case *time.Time:
		if val == nil {
			return ""
		}
		t = *val
	default:
		return ""
	}
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}

// formatPercent formats a tax rate, dropping trailing zeros.
// Example: 18.0000 -> "18%"
func formatPercent(v decimal.Decimal) string {
	return v.Truncate(2).String() + "%"
}

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// amountInWords spells out an amount in the Indian numbering system.
// Example: 123456.50 -> "Rupees One Lakh Twenty Three Thousand Four
// Hundred Fifty Six and Fifty Paise Only"
func amountInWords(v decimal.Decimal) string {
	v = v.Abs().Round(2)
	paise := v.Mul(decimal.NewFromInt(100)).IntPart()
	rupees := paise / 100
	paise = paise % 100

	if rupees == 0 && paise == 0 {
		return "Rupees Zero Only"
	}

	var b strings.Builder
	b.WriteString("Rupees ")
	if rupees > 0 {
		b.WriteString(numberInWords(rupees))
	} else {
		b.WriteString("Zero")
	}
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(numberInWords(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// numberInWords converts a positive integer using crore/lakh units.
func numberInWords(n int64) string {
	var parts []string

	appendUnit := func(value int64, unit string) {
		if value > 0 {
			parts = append(parts, belowThousand(value))
			if unit != "" {
				parts = append(parts, unit)
			}
		}
	}

	appendUnit(n/10000000, "Crore")
	n %= 10000000
	appendUnit(n/100000, "Lakh")
	n %= 100000
	appendUnit(n/1000, "Thousand")
	n %= 1000
	appendUnit(n, "")

	return strings.Join(parts, " ")
}

func belowThousand(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100], "Hundred")
		n %= 100
	}
	if n >= 20 {
		parts = append(parts, tensWords[n/10])
		n %= 10
	}
	if n > 0 {
		parts = append(parts, onesWords[n])
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ")
}
