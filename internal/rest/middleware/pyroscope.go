package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/invoice-service/internal/pyroscope"
)

// PyroscopeMiddleware labels CPU and allocation samples taken while a request
// is handled with its method and route template
func PyroscopeMiddleware(svc *pyroscope.Service) gin.HandlerFunc {
	if !svc.IsEnabled() {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		svc.TagWrapper(c.Request.Context(), RequestProfileLabels(c), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// RequestProfileLabels uses the route template rather than the raw path to
// keep label cardinality bounded
func RequestProfileLabels(c *gin.Context) map[string]string {
	endpoint := c.FullPath()
	if endpoint == "" {
		endpoint = "unmatched"
	}
	return map[string]string{
		"method":   c.Request.Method,
		"endpoint": endpoint,
		"handler":  c.Request.Method + " " + endpoint,
	}
}
