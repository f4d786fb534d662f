package invoice

import (
	"time"

	"github.com/ledgerline/invoice-service/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice represents the invoice domain model
type Invoice struct {
	ID        int64               `db:"id" json:"id"`
	Customer  string              `db:"customer" json:"customer"`
	Amount    decimal.Decimal     `db:"amount" json:"amount"`
	Status    types.InvoiceStatus `db:"status" json:"status"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt time.Time           `db:"updated_at" json:"updated_at"`
}

// ConflictDetails returns the user-supplied values of the invoice, reported
// back when the store rejects them
func (i *Invoice) ConflictDetails() map[string]any {
	return map[string]any{
		"customer": i.Customer,
		"amount":   i.Amount.StringFixed(2),
		"status":   string(i.Status),
	}
}
