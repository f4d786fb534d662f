package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	ierr "github.com/ledgerline/invoice-service/internal/errors"
	"github.com/ledgerline/invoice-service/internal/logger"
	"github.com/ledgerline/invoice-service/internal/types"
)

// stampedWriter attaches the correlation and timing headers right before the
// status line goes out, whichever write path gin takes.
type stampedWriter struct {
	gin.ResponseWriter
	requestID string
	start     time.Time
	stamped   bool
}

func (w *stampedWriter) stamp() {
	if w.stamped || w.ResponseWriter.Written() {
		return
	}
	w.stamped = true

	h := w.ResponseWriter.Header()
	h.Set(types.HeaderRequestID, w.requestID)
	h.Set(types.HeaderProcessTime, strconv.FormatFloat(time.Since(w.start).Seconds(), 'f', 6, 64))
}

func (w *stampedWriter) WriteHeaderNow() {
	w.stamp()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *stampedWriter) Write(data []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(data)
}

func (w *stampedWriter) WriteString(s string) (int, error) {
	w.stamp()
	return w.ResponseWriter.WriteString(s)
}

func (w *stampedWriter) Flush() {
	w.stamp()
	w.ResponseWriter.Flush()
}

// RequestPipeline assigns every request a fresh correlation ID, times it and
// logs its outcome. Errors attached to the context are left for ErrorTranslator.
func RequestPipeline(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := types.GenerateRequestID()

		c.Request = c.Request.WithContext(types.SetRequestID(c.Request.Context(), requestID))
		c.Set(string(types.CtxRequestID), requestID)

		writer := &stampedWriter{
			ResponseWriter: c.Writer,
			requestID:      requestID,
			start:          start,
		}
		c.Writer = writer

		log.Infow("request started",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP(),
		)

		defer func() {
			if r := recover(); r != nil {
				log.Errorw("request failed",
					"request_id", requestID,
					"error", fmt.Sprint(r),
					"duration", time.Since(start),
				)
				panic(r)
			}
		}()

		c.Next()

		// bodiless responses are flushed by gin below this writer
		writer.stamp()

		if err := c.Errors.Last(); err != nil {
			// classified client errors are expected traffic
			logf := log.Warnw
			if ierr.HTTPStatusFromErr(err.Err) >= http.StatusInternalServerError {
				logf = log.Errorw
			}
			logf("request failed",
				"request_id", requestID,
				"error", err.Err.Error(),
				"duration", time.Since(start),
			)
			return
		}

		log.Infow("request completed",
			"request_id", requestID,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
