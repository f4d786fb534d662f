package invoice

import (
	"testing"

	"github.com/ledgerline/invoice-service/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoice_ConflictDetails(t *testing.T) {
	inv := &Invoice{
		Customer: "Acme",
		Amount:   decimal.RequireFromString("100.5"),
		Status:   types.InvoiceStatusPaid,
	}

	assert.Equal(t, map[string]any{
		"customer": "Acme",
		"amount":   "100.50",
		"status":   "paid",
	}, inv.ConflictDetails())
}
