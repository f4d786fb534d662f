package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ledgerline/invoice-service/internal/domain/invoice"
	ierr "github.com/ledgerline/invoice-service/internal/errors"
	"github.com/ledgerline/invoice-service/internal/logger"
	"github.com/ledgerline/invoice-service/internal/postgres"
	"github.com/ledgerline/invoice-service/internal/sentry"
	"github.com/lib/pq"
)

const (
	queryListInvoices = `
		SELECT id, customer, amount, status, created_at, updated_at
		FROM invoices
		ORDER BY created_at DESC, id DESC`

	queryInsertInvoice = `
		INSERT INTO invoices (customer, amount, status)
		VALUES ($1, $2, $3)
		RETURNING id, customer, amount, status, created_at, updated_at`

	// SQLSTATE class 23 covers unique, check, not-null and foreign key violations
	integrityConstraintViolation pq.ErrorClass = "23"
)

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
	sentry *sentry.Service
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger, sentry *sentry.Service) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger, sentry: sentry}
}

func (r *invoiceRepository) List(ctx context.Context) ([]*invoice.Invoice, error) {
	span, ctx := r.sentry.StartDBSpan(ctx, "invoice.list", nil)

	invoices := make([]*invoice.Invoice, 0)
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &invoices, queryListInvoices)
	sentry.FinishSpan(span, err)
	if err != nil {
		return nil, ierr.PersistenceFailure(err, "Failed to fetch invoices")
	}
	if invoices == nil {
		invoices = []*invoice.Invoice{}
	}

	return invoices, nil
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) (err error) {
	span, ctx := r.sentry.StartDBSpan(ctx, "invoice.create", map[string]interface{}{
		"customer": inv.Customer,
		"status":   string(inv.Status),
	})
	defer func() { sentry.FinishSpan(span, err) }()

	r.logger.Debugw("creating invoice",
		"customer", inv.Customer,
		"status", inv.Status,
	)

	created := &invoice.Invoice{}
	if err = r.insert(ctx, inv, created); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Class() == integrityConstraintViolation {
			return ierr.DuplicateEntity(err, inv.ConflictDetails())
		}
		return ierr.PersistenceFailure(err, "Failed to create invoice")
	}

	*inv = *created
	return nil
}

// insert runs the INSERT in its own transaction. A panic raised while the
// transaction is open is rolled back by WithTx and returned here as an error.
func (r *invoiceRepository) insert(ctx context.Context, inv, dest *invoice.Invoice) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while creating invoice: %v", rec)
		}
	}()

	return r.db.WithTx(ctx, func(ctx context.Context) error {
		return r.db.GetQuerier(ctx).GetContext(ctx, dest, queryInsertInvoice,
			inv.Customer, inv.Amount, inv.Status)
	})
}
