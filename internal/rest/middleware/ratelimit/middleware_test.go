package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amora-app/amora/internal/rest/middleware/ratelimit"
	"github.com/amora-app/amora/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	middleware := ratelimit.New(&config.RateLimit{
		RequestsPerSecond: 1,
		BurstSize:         3,
	}, logger)

	handler := middleware.AsRESTMiddleware(func(w http.ResponseWriter, _ bunrouter.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	})

	doRequest := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/users/1/reputation", nil)
		req.RemoteAddr = remoteAddr

		rec := httptest.NewRecorder()
		err := handler(rec, bunrouter.NewRequest(req))
		require.NoError(t, err)

		return rec.Code
	}

	// Burst-size requests pass, the next is rejected.
	for range 3 {
		assert.Equal(t, http.StatusOK, doRequest("10.0.0.1:1234"))
	}

	assert.Equal(t, http.StatusTooManyRequests, doRequest("10.0.0.1:1234"))

	// Another client has its own limiter.
	assert.Equal(t, http.StatusOK, doRequest("10.0.0.2:1234"))
}
