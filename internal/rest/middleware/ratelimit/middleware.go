package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/amora-app/amora/internal/setup/config"
	"github.com/amora-app/amora/pkg/utils"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const errRateLimit = "rate limit exceeded"

// Middleware implements per-IP rate limiting for API requests.
type Middleware struct {
	limiters *utils.TTLMap[string, *rate.Limiter]
	config   *config.RateLimit
	logger   *zap.Logger
}

// New creates a new rate limiting middleware.
func New(config *config.RateLimit, logger *zap.Logger) *Middleware {
	// Keep limiter state around long enough to outlive a full burst refill.
	ttl := time.Minute
	if burstTTL := time.Second * time.Duration(config.BurstSize*2); burstTTL > ttl {
		ttl = burstTTL
	}

	return &Middleware{
		limiters: utils.NewTTLMap[string, *rate.Limiter](ttl),
		config:   config,
		logger:   logger.Named("ratelimit"),
	}
}

// AsRESTMiddleware returns a bunrouter middleware handler that enforces the
// per-IP limit.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		clientIP := clientIP(req.Request)

		if !m.getLimiter(clientIP).Allow() {
			m.logger.Debug("Rate limit exceeded", zap.String("ip", clientIP))
			http.Error(w, errRateLimit, http.StatusTooManyRequests)

			return nil
		}

		return next(w, req)
	}
}

// getLimiter returns the rate limiter for the specified IP, creating one on
// first sight.
func (m *Middleware) getLimiter(clientIP string) *rate.Limiter {
	if limiter, exists := m.limiters.Get(clientIP); exists {
		return limiter
	}

	limiter := rate.NewLimiter(rate.Limit(m.config.RequestsPerSecond), m.config.BurstSize)
	m.limiters.Set(clientIP, limiter)

	return limiter
}

// clientIP extracts the caller's address, preferring the forwarded header
// set by the edge proxy.
func clientIP(req *http.Request) string {
	if forwarded := req.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.IndexByte(forwarded, ','); idx >= 0 {
			return strings.TrimSpace(forwarded[:idx])
		}

		return strings.TrimSpace(forwarded)
	}

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}

	return host
}
