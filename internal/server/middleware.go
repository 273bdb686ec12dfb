package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/remark/internal/core/logging"
)

const requestIDHeader = "X-Request-ID"

// requestID tags each request with the caller's X-Request-ID or a new uuid.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		evt := log.Debug()
		if status >= 500 {
			evt = log.Error()
		}
		if len(c.Errors) > 0 {
			evt = evt.Str("errors", c.Errors.String())
		}
		evt.Ctx(c.Request.Context()).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
