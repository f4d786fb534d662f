package middleware

import (
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/ledgerline/invoice-service/internal/sentry"
)

// SentryMiddleware attaches a Sentry hub to each request. Panics are reported
// and re-raised so ErrorTranslator still renders the response.
func SentryMiddleware(svc *sentry.Service) gin.HandlerFunc {
	if !svc.Enabled() {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}
