package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amora-app/amora/internal/rest/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

func TestCompleteOnboardingValidation(t *testing.T) {
	t.Parallel()

	router := bunrouter.New()
	router.POST("/v1/users", handler.NewUserHandler(nil, zap.NewNop()).CompleteOnboarding)

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{{`},
		{name: "missing id", body: `{"displayName":"fresh"}`},
		{name: "missing display name", body: `{"id":7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/v1/users", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			require.NoError(t, router.ServeHTTPError(rec, req))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
