package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusFromErr(t *testing.T) {
	cause := errors.New("pq: duplicate key value violates unique constraint")

	tests := []struct {
		name   string
		err    error
		status int
		kind   *InternalError
	}{
		{"not found", NotFound(42), http.StatusNotFound, ErrNotFound},
		{"duplicate", DuplicateEntity(cause, map[string]any{"customer": "Acme"}), http.StatusConflict, ErrAlreadyExists},
		{"validation", ValidationFailed("amount", "must be positive"), http.StatusBadRequest, ErrValidation},
		{"persistence", PersistenceFailure(cause, "Failed to create invoice"), http.StatusInternalServerError, ErrDatabase},
		{"invalid request", NewError("bad body").Mark(ErrInvalidRequest), http.StatusUnprocessableEntity, ErrInvalidRequest},
		{"wrapped", fmt.Errorf("service: %w", NotFound(7)), http.StatusNotFound, ErrNotFound},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatusFromErr(tt.err))
			assert.Equal(t, tt.kind, KindOf(tt.err))
		})
	}
}

func TestKindOf_Nil(t *testing.T) {
	assert.Nil(t, KindOf(nil))
}

func TestKindsAreDistinct(t *testing.T) {
	err := DuplicateEntity(errors.New("dup"), nil)
	assert.True(t, IsAlreadyExists(err))
	assert.False(t, IsDatabase(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.False(t, IsInvalidRequest(err))
}

func TestDisplayMessage(t *testing.T) {
	t.Run("uses hint", func(t *testing.T) {
		err := PersistenceFailure(errors.New("dial tcp 10.0.0.5:5432: connection refused"), "Failed to fetch invoices")
		assert.Equal(t, "Failed to fetch invoices", DisplayMessage(err))
	})

	t.Run("falls back to kind message", func(t *testing.T) {
		err := NewError("row missing").Mark(ErrNotFound)
		assert.Equal(t, "Invoice not found", DisplayMessage(err))
	})

	t.Run("unclassified", func(t *testing.T) {
		assert.Equal(t, InternalServerErrorMessage, DisplayMessage(errors.New("secret dsn")))
	})
}

func TestSafeDetails(t *testing.T) {
	err := NotFound(42)
	details := SafeDetails(err)
	// numbers come back as float64 after the JSON round trip
	assert.Equal(t, map[string]any{"invoice_id": float64(42)}, details)

	err = ValidationFailed("amount", "must be positive")
	assert.Equal(t, map[string]any{"field": "amount", "reason": "must be positive"}, SafeDetails(err))

	assert.Empty(t, SafeDetails(PersistenceFailure(errors.New("x"), "Failed")))
}

func TestNewErrorResponse(t *testing.T) {
	t.Run("classified with details", func(t *testing.T) {
		resp := NewErrorResponse(DuplicateEntity(errors.New("dup"), map[string]any{"customer": "Acme"}))
		assert.Equal(t, "Invoice already exists", resp.Error)
		assert.Equal(t, map[string]any{"customer": "Acme"}, resp.Details)
	})

	t.Run("classified without details", func(t *testing.T) {
		resp := NewErrorResponse(PersistenceFailure(errors.New("password=hunter2"), "Failed to create invoice"))
		assert.Equal(t, "Failed to create invoice", resp.Error)
		assert.Nil(t, resp.Details)
	})

	t.Run("unclassified never leaks", func(t *testing.T) {
		cause := errors.New("pq: password authentication failed for user invoice_user")
		resp := NewErrorResponse(WithError(cause).WithHint("leaky hint").Error())
		assert.Equal(t, InternalServerErrorMessage, resp.Error)
		assert.Nil(t, resp.Details)
	})
}

func TestBuilderKeepsCause(t *testing.T) {
	cause := errors.New("root cause")
	err := WithError(cause).WithMessage("creating invoice").Mark(ErrDatabase)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "root cause")
}
