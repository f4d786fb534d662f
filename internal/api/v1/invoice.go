package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/invoice-service/internal/api/dto"
	ierr "github.com/ledgerline/invoice-service/internal/errors"
	"github.com/ledgerline/invoice-service/internal/logger"
	"github.com/ledgerline/invoice-service/internal/service"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	logger         *logger.Logger
}

func NewInvoiceHandler(invoiceService service.InvoiceService, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// CreateInvoice godoc
// @Summary Create a new invoice
// @Description Create a new invoice. Status defaults to pending.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/ [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Request validation failed").
			WithReportableDetails(map[string]any{"body": "must be a valid JSON invoice object"}).
			Mark(ierr.ErrInvalidRequest))
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// ListInvoices godoc
// @Summary List invoices
// @Description List every invoice, newest first
// @Tags Invoices
// @Produce json
// @Success 200 {array} dto.InvoiceResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/ [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, invoices)
}
