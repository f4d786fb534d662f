package types

import (
	"testing"

	ierr "github.com/ledgerline/invoice-service/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatus_Validate(t *testing.T) {
	for _, s := range InvoiceStatuses {
		assert.NoError(t, s.Validate(), s)
	}

	for _, s := range []InvoiceStatus{"", "invalid_status", "PAID", "draft"} {
		err := s.Validate()
		assert.Error(t, err, s)
		assert.True(t, ierr.IsInvalidRequest(err), s)
	}
}
