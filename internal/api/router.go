package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/ledgerline/invoice-service/internal/api/v1"
	"github.com/ledgerline/invoice-service/internal/config"
	"github.com/ledgerline/invoice-service/internal/logger"
	"github.com/ledgerline/invoice-service/internal/pyroscope"
	"github.com/ledgerline/invoice-service/internal/rest/middleware"
	"github.com/ledgerline/invoice-service/internal/sentry"
)

type Handlers struct {
	Health  *v1.HealthHandler
	Invoice *v1.InvoiceHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, sentry *sentry.Service, profiler *pyroscope.Service) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.ErrorTranslator(logger, sentry),
		middleware.RequestPipeline(logger),
		middleware.SentryMiddleware(sentry),
		middleware.PyroscopeMiddleware(profiler),
		middleware.CORSMiddleware(cfg),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/api/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	invoices := router.Group("/invoices")
	{
		invoices.GET("/", handlers.Invoice.ListInvoices)
		invoices.POST("/", handlers.Invoice.CreateInvoice)
	}
}
