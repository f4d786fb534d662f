package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/ledgerline/invoice-service/internal/errors"
	"github.com/ledgerline/invoice-service/internal/logger"
	"github.com/ledgerline/invoice-service/internal/sentry"
	"github.com/ledgerline/invoice-service/internal/types"
)

// ErrorTranslator is the outermost middleware and the only place failures
// are serialized. Classified errors keep their message, details and status;
// anything else, panics included, becomes a bare 500. Panics are reported to
// Sentry by SentryMiddleware, errors attached to the context are reported here.
func ErrorTranslator(log *logger.Logger, reporter *sentry.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if r == http.ErrAbortHandler {
				panic(r)
			}
			err := ierr.NewError(fmt.Sprintf("panic recovered: %v", r)).Error()
			translate(c, log, nil, err)
		}()

		c.Next()

		if last := c.Errors.Last(); last != nil {
			translate(c, log, reporter, last.Err)
		}
	}
}

func translate(c *gin.Context, log *logger.Logger, reporter *sentry.Service, err error) {
	ctx := c.Request.Context()
	status := ierr.HTTPStatusFromErr(err)
	kind := ierr.KindUnclassified
	if k := ierr.KindOf(err); k != nil {
		kind = k.Kind
	}

	fields := []interface{}{
		"request_id", types.GetRequestID(ctx),
		"kind", string(kind),
		"status", status,
		"error", fmt.Sprintf("%+v", err),
	}
	if status >= http.StatusInternalServerError {
		log.Errorw("request error", fields...)
		reporter.CaptureException(ctx, err)
	} else {
		log.Warnw("request error", fields...)
	}

	if c.Writer.Written() {
		// headers are gone, nothing left to translate into
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(status, ierr.NewErrorResponse(err))
}
