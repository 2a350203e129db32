// Package printing renders issued invoices as printable HTML documents.
package printing

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/identity"
)

// InvoiceDocument is the data bound to the invoice template.
type InvoiceDocument struct {
	Invoice *billing.Invoice
	Seller  *identity.User
}

// InvoiceRenderer renders invoices with html/template. The default
// template ships with the binary; a custom template string can replace
// it per renderer.
type InvoiceRenderer struct {
	tmpl *template.Template
}

// NewInvoiceRenderer creates a renderer with the built-in template.
func NewInvoiceRenderer() (*InvoiceRenderer, error) {
	return NewInvoiceRendererWithTemplate(defaultInvoiceTemplate)
}

// NewInvoiceRendererWithTemplate creates a renderer from a template string.
func NewInvoiceRendererWithTemplate(content string) (*InvoiceRenderer, error) {
	tmpl, err := template.New("invoice").Funcs(templateFuncs()).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse invoice template: %w", err)
	}
	return &InvoiceRenderer{tmpl: tmpl}, nil
}

// Render produces the HTML document for an issued invoice.
func (r *InvoiceRenderer) Render(invoice *billing.Invoice, seller *identity.User) (string, error) {
	if invoice == nil {
		return "", fmt.Errorf("render invoice: invoice is nil")
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, &InvoiceDocument{Invoice: invoice, Seller: seller}); err != nil {
		return "", fmt.Errorf("render invoice %s: %w", invoice.InvoiceNumber, err)
	}
	return buf.String(), nil
}
