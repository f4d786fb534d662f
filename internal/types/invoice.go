package types

import (
	ierr "github.com/ledgerline/invoice-service/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus represents the billing state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
)

// InvoiceStatuses lists every accepted status in display order
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusPending,
	InvoiceStatusPaid,
	InvoiceStatusCancelled,
	InvoiceStatusOverdue,
}

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	if !lo.Contains(InvoiceStatuses, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"status":  "must be one of pending, paid, cancelled, overdue",
				"allowed": InvoiceStatuses,
			}).
			Mark(ierr.ErrInvalidRequest)
	}
	return nil
}
