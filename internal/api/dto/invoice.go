package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/ledgerline/invoice-service/internal/domain/invoice"
	ierr "github.com/ledgerline/invoice-service/internal/errors"
	"github.com/ledgerline/invoice-service/internal/types"
	"github.com/ledgerline/invoice-service/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// MaxInvoiceAmount is the largest value a NUMERIC(10,2) column holds
var MaxInvoiceAmount = decimal.RequireFromString("99999999.99")

const (
	// maxAmountIntegerDigits is the integer part of NUMERIC(10,2)
	maxAmountIntegerDigits = 8
	// maxAmountExponent bounds trailing zeros such as 1.500 before rounding
	maxAmountExponent = 20
)

// CreateInvoiceRequest represents the request payload for creating a new invoice
type CreateInvoiceRequest struct {
	// customer is the name of the billed party
	Customer string `json:"customer" validate:"required,min=1,max=255"`

	// amount is the invoiced total, accepted as a JSON string or number
	Amount *decimal.Decimal `json:"amount" validate:"required" swaggertype:"string"`

	// status defaults to pending when omitted, an explicit null is rejected
	Status *types.InvoiceStatus `json:"status,omitempty"`

	statusNull bool
}

// UnmarshalJSON tells an absent status apart from "status": null
func (r *CreateInvoiceRequest) UnmarshalJSON(data []byte) error {
	type alias CreateInvoiceRequest
	var raw struct {
		alias
		Status json.RawMessage `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = CreateInvoiceRequest(raw.alias)
	r.Status = nil
	r.statusNull = false

	switch {
	case raw.Status == nil:
	case bytes.Equal(bytes.TrimSpace(raw.Status), []byte("null")):
		r.statusNull = true
	default:
		var status types.InvoiceStatus
		if err := json.Unmarshal(raw.Status, &status); err != nil {
			return err
		}
		r.Status = &status
	}
	return nil
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	// the exponent is caller controlled, every comparison below rescales
	// the coefficient to it
	exp := int(r.Amount.Exponent())
	if exp < -maxAmountExponent {
		return invalidField("amount", "must have at most 2 decimal places")
	}
	if r.Amount.NumDigits()+exp > maxAmountIntegerDigits {
		return invalidField("amount", "must be at most "+MaxInvoiceAmount.String())
	}

	if !r.Amount.IsPositive() {
		return invalidField("amount", "must be greater than 0")
	}

	if !r.Amount.Equal(r.Amount.Round(2)) {
		return invalidField("amount", "must have at most 2 decimal places")
	}

	if r.Amount.GreaterThan(MaxInvoiceAmount) {
		return invalidField("amount", "must be at most "+MaxInvoiceAmount.String())
	}

	if r.statusNull {
		return invalidField("status", "must not be null")
	}

	if r.Status != nil {
		if err := r.Status.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func (r *CreateInvoiceRequest) ToInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		Customer: r.Customer,
		Amount:   r.Amount.Round(2),
		Status:   lo.FromPtrOr(r.Status, types.InvoiceStatusPending),
	}
}

func invalidField(field, reason string) error {
	return ierr.NewError("invalid " + field + ": " + reason).
		WithHint("Request validation failed").
		WithReportableDetails(map[string]any{field: reason}).
		Mark(ierr.ErrInvalidRequest)
}

// InvoiceResponse represents an invoice as returned by the API
type InvoiceResponse struct {
	ID        int64               `json:"id"`
	Customer  string              `json:"customer"`
	Amount    string              `json:"amount"`
	Status    types.InvoiceStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:        inv.ID,
		Customer:  inv.Customer,
		Amount:    inv.Amount.StringFixed(2),
		Status:    inv.Status,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

// NewInvoiceListResponse never returns nil so that an empty list encodes as []
func NewInvoiceListResponse(invoices []*invoice.Invoice) []*InvoiceResponse {
	return lo.Map(invoices, func(inv *invoice.Invoice, _ int) *InvoiceResponse {
		return NewInvoiceResponse(inv)
	})
}
