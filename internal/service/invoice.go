package service

import (
	"context"

	"github.com/ledgerline/invoice-service/internal/api/dto"
	"github.com/ledgerline/invoice-service/internal/domain/invoice"
	"github.com/ledgerline/invoice-service/internal/logger"
)

type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context) ([]*dto.InvoiceResponse, error)
}

type invoiceService struct {
	invoiceRepo invoice.Repository
	logger      *logger.Logger
}

func NewInvoiceService(invoiceRepo invoice.Repository, logger *logger.Logger) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// CreateInvoice validates the request and persists it. Errors leave this
// method already classified.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv := req.ToInvoice()
	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.logger.Infow("invoice created",
		"invoice_id", inv.ID,
		"status", inv.Status,
	)

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]*dto.InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewInvoiceListResponse(invoices), nil
}
