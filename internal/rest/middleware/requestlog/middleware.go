package requestlog

import (
	"net/http"
	"time"

	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Middleware logs each request with its duration and outcome.
type Middleware struct {
	logger *zap.Logger
}

// New creates a new request logging middleware.
func New(logger *zap.Logger) *Middleware {
	return &Middleware{logger: logger.Named("http")}
}

// AsRESTMiddleware returns a bunrouter middleware handler that logs the
// request after it completes.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		start := time.Now()

		err := next(w, req)

		fields := []zap.Field{
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			m.logger.Error("Request failed", append(fields, zap.Error(err))...)
		} else {
			m.logger.Debug("Request handled", fields...)
		}

		return err
	}
}
