package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Kind is the closed set of classified failures the API can report.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindAlreadyExists  Kind = "already_exists"
	KindValidation     Kind = "validation_error"
	KindDatabase       Kind = "database_error"
	KindInvalidRequest Kind = "invalid_request"
	KindUnclassified   Kind = "unclassified"
)

// InternalServerErrorMessage is the only message an unclassified failure
// ever shows to a caller.
const InternalServerErrorMessage = "Internal server error"

// Sentinels for every Kind. Errors are tagged with one of these through
// ErrorBuilder.Mark and resolved back with KindOf / HTTPStatusFromErr.
var (
	ErrNotFound       = new(KindNotFound, "Invoice not found", http.StatusNotFound)
	ErrAlreadyExists  = new(KindAlreadyExists, "Invoice already exists", http.StatusConflict)
	ErrValidation     = new(KindValidation, "Validation failed", http.StatusBadRequest)
	ErrDatabase       = new(KindDatabase, "Database operation failed", http.StatusInternalServerError)
	ErrInvalidRequest = new(KindInvalidRequest, "Request validation failed", http.StatusUnprocessableEntity)

	// ordered from most to least specific
	taxonomy = []*InternalError{
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidRequest,
		ErrValidation,
		ErrDatabase,
	}
)

// InternalError is the sentinel value of a Kind
type InternalError struct {
	Kind    Kind   // Machine-readable kind
	Message string // Default user-safe message
	Status  int    // HTTP status code
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	t, ok := target.(*InternalError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func new(kind Kind, message string, status int) *InternalError {
	return &InternalError{
		Kind:    kind,
		Message: message,
		Status:  status,
	}
}

// NotFound reports a missing entity, carrying the identifier sought.
func NotFound(id any) error {
	return NewError("invoice not found").
		WithHint("Invoice not found").
		WithReportableDetails(map[string]any{"invoice_id": id}).
		Mark(ErrNotFound)
}

// DuplicateEntity wraps a store-level integrity violation, carrying the
// conflicting field values.
func DuplicateEntity(cause error, fields map[string]any) error {
	return WithError(cause).
		WithHint("Invoice already exists").
		WithReportableDetails(fields).
		Mark(ErrAlreadyExists)
}

// ValidationFailed reports a domain rule violation on a single field.
func ValidationFailed(field, reason string) error {
	return NewError(fmt.Sprintf("validation failed for field %s: %s", field, reason)).
		WithHint("Validation failed").
		WithReportableDetails(map[string]any{"field": field, "reason": reason}).
		Mark(ErrValidation)
}

// PersistenceFailure wraps an opaque store failure. The cause is kept for the
// server-side log only; msg is what callers see.
func PersistenceFailure(cause error, msg string) error {
	return WithError(cause).
		WithHint(msg).
		Mark(ErrDatabase)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

// KindOf returns the taxonomy sentinel err is marked with, or nil when err is
// unclassified.
func KindOf(err error) *InternalError {
	if err == nil {
		return nil
	}
	for _, sentinel := range taxonomy {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsDatabase checks if an error is a persistence failure
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// IsInvalidRequest checks if an error was raised by request schema validation
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

func HTTPStatusFromErr(err error) int {
	if kind := KindOf(err); kind != nil {
		return kind.Status
	}
	return http.StatusInternalServerError
}
