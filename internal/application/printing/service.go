package printing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/identity"
	infra "github.com/invoicehub/backend/internal/infrastructure/printing"
)

// PrintService produces printable invoice documents
type PrintService struct {
	invoiceRepo billing.InvoiceRepository
	userRepo    identity.UserRepository
	renderer    *infra.InvoiceRenderer
	logger      *zap.Logger
}

// NewPrintService creates a new PrintService
func NewPrintService(
	invoiceRepo billing.InvoiceRepository,
	userRepo identity.UserRepository,
	renderer *infra.InvoiceRenderer,
	logger *zap.Logger,
) *PrintService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrintService{
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
		renderer:    renderer,
		logger:      logger,
	}
}

// RenderInvoice renders the invoice as a printable HTML document. The
// owning user's business details appear in the seller block.
func (s *PrintService) RenderInvoice(ctx context.Context, userID, invoiceID uuid.UUID) (string, error) {
	invoice, err := s.invoiceRepo.FindByIDForUser(ctx, userID, invoiceID)
	if err != nil {
		return "", err
	}

	seller, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	html, err := s.renderer.Render(invoice, seller)
	if err != nil {
		s.logger.Error("failed to render invoice",
			zap.String("invoice_number", invoice.InvoiceNumber),
			zap.Error(err))
		return "", err
	}

	s.logger.Debug("invoice rendered",
		zap.String("invoice_number", invoice.InvoiceNumber))

	return html, nil
}
