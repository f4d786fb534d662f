package repository

import (
	"github.com/ledgerline/invoice-service/internal/domain/invoice"
	"github.com/ledgerline/invoice-service/internal/logger"
	"github.com/ledgerline/invoice-service/internal/postgres"
	postgresRepo "github.com/ledgerline/invoice-service/internal/repository/postgres"
	"github.com/ledgerline/invoice-service/internal/sentry"
)

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger, sentry *sentry.Service) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger, sentry)
}
