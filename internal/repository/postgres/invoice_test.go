package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/ledgerline/invoice-service/internal/config"
	"github.com/ledgerline/invoice-service/internal/domain/invoice"
	ierr "github.com/ledgerline/invoice-service/internal/errors"
	"github.com/ledgerline/invoice-service/internal/logger"
	"github.com/ledgerline/invoice-service/internal/postgres"
	"github.com/ledgerline/invoice-service/internal/sentry"
	"github.com/ledgerline/invoice-service/internal/types"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var invoiceColumns = []string{"id", "customer", "amount", "status", "created_at", "updated_at"}

type InvoiceRepositorySuite struct {
	suite.Suite
	ctx  context.Context
	mock sqlmock.Sqlmock
	sql  *sql.DB
	repo invoice.Repository
}

func TestInvoiceRepository(t *testing.T) {
	suite.Run(t, new(InvoiceRepositorySuite))
}

func (s *InvoiceRepositorySuite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)

	log := logger.NewNoopLogger()
	cfg := config.GetDefaultConfig()

	s.ctx = types.SetRequestID(context.Background(), "req-1")
	s.mock = mock
	s.sql = db
	s.repo = NewInvoiceRepository(
		postgres.New(sqlx.NewDb(db, "postgres"), log),
		log,
		sentry.NewSentryService(cfg, log),
	)
}

func (s *InvoiceRepositorySuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.sql.Close()
}

func (s *InvoiceRepositorySuite) newInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		Customer: "Acme Corp",
		Amount:   decimal.RequireFromString("100.50"),
		Status:   types.InvoiceStatusPending,
	}
}

func (s *InvoiceRepositorySuite) expectInsert() *sqlmock.ExpectedQuery {
	return s.mock.ExpectQuery(regexp.QuoteMeta(queryInsertInvoice)).
		WithArgs("Acme Corp", sqlmock.AnyArg(), "pending")
}

func (s *InvoiceRepositorySuite) TestList() {
	older := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	s.mock.ExpectQuery(regexp.QuoteMeta(queryListInvoices)).
		WillReturnRows(sqlmock.NewRows(invoiceColumns).
			AddRow(int64(2), "Globex", "20.00", "paid", newer, newer).
			AddRow(int64(1), "Acme Corp", "100.50", "pending", older, older))

	invoices, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(invoices, 2)
	s.Equal(int64(2), invoices[0].ID)
	s.Equal(types.InvoiceStatusPaid, invoices[0].Status)
	s.True(decimal.RequireFromString("100.50").Equal(invoices[1].Amount))
	s.Equal(older, invoices[1].CreatedAt)
}

func (s *InvoiceRepositorySuite) TestList_Empty() {
	s.mock.ExpectQuery(regexp.QuoteMeta(queryListInvoices)).
		WillReturnRows(sqlmock.NewRows(invoiceColumns))

	invoices, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.NotNil(invoices)
	s.Empty(invoices)
}

func (s *InvoiceRepositorySuite) TestList_StoreFailure() {
	s.mock.ExpectQuery(regexp.QuoteMeta(queryListInvoices)).
		WillReturnError(errors.New("connection refused"))

	invoices, err := s.repo.List(s.ctx)
	s.Nil(invoices)
	s.True(ierr.IsDatabase(err))
	s.Equal("Failed to fetch invoices", ierr.DisplayMessage(err))
	s.Empty(ierr.SafeDetails(err))
}

func (s *InvoiceRepositorySuite) TestCreate_Commits() {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	s.mock.ExpectBegin()
	s.expectInsert().WillReturnRows(sqlmock.NewRows(invoiceColumns).
		AddRow(int64(7), "Acme Corp", "100.50", "pending", now, now))
	s.mock.ExpectCommit()

	inv := s.newInvoice()
	s.Require().NoError(s.repo.Create(s.ctx, inv))
	s.Equal(int64(7), inv.ID)
	s.Equal(now, inv.CreatedAt)
	s.Equal(inv.CreatedAt, inv.UpdatedAt)
	s.Equal("100.50", inv.Amount.StringFixed(2))
}

func (s *InvoiceRepositorySuite) TestCreate_IntegrityViolationRollsBack() {
	s.mock.ExpectBegin()
	s.expectInsert().WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
	s.mock.ExpectRollback()

	inv := s.newInvoice()
	err := s.repo.Create(s.ctx, inv)
	s.True(ierr.IsAlreadyExists(err))
	s.Equal("Invoice already exists", ierr.DisplayMessage(err))
	s.Equal(map[string]any{
		"customer": "Acme Corp",
		"amount":   "100.50",
		"status":   "pending",
	}, ierr.SafeDetails(err))
	s.Zero(inv.ID)
}

func (s *InvoiceRepositorySuite) TestCreate_CheckViolationIsIntegrity() {
	s.mock.ExpectBegin()
	s.expectInsert().WillReturnError(&pq.Error{Code: "23514", Message: "new row violates check constraint"})
	s.mock.ExpectRollback()

	s.True(ierr.IsAlreadyExists(s.repo.Create(s.ctx, s.newInvoice())))
}

func (s *InvoiceRepositorySuite) TestCreate_InsertFailureRollsBack() {
	s.mock.ExpectBegin()
	s.expectInsert().WillReturnError(&pq.Error{Code: "57P01", Message: "terminating connection due to administrator command"})
	s.mock.ExpectRollback()

	err := s.repo.Create(s.ctx, s.newInvoice())
	s.True(ierr.IsDatabase(err))
	s.Equal("Failed to create invoice", ierr.DisplayMessage(err))
	s.NotContains(ierr.DisplayMessage(err), "terminating")
}

func (s *InvoiceRepositorySuite) TestCreate_BeginFailure() {
	s.mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	err := s.repo.Create(s.ctx, s.newInvoice())
	s.True(ierr.IsDatabase(err))
	s.Equal("Failed to create invoice", ierr.DisplayMessage(err))
}

func (s *InvoiceRepositorySuite) TestCreate_CommitFailure() {
	now := time.Now().UTC()

	s.mock.ExpectBegin()
	s.expectInsert().WillReturnRows(sqlmock.NewRows(invoiceColumns).
		AddRow(int64(8), "Acme Corp", "100.50", "pending", now, now))
	s.mock.ExpectCommit().WillReturnError(errors.New("connection reset by peer"))

	inv := s.newInvoice()
	err := s.repo.Create(s.ctx, inv)
	s.True(ierr.IsDatabase(err))
	s.Zero(inv.ID)
}
