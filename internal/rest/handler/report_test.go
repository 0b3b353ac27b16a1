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

func TestUpdateStatusValidation(t *testing.T) {
	t.Parallel()

	router := bunrouter.New()
	router.PATCH("/v1/reports/:id", handler.NewReportHandler(nil, zap.NewNop()).UpdateStatus)

	tests := []struct {
		name string
		path string
		body string
	}{
		{
			name: "malformed report id",
			path: "/v1/reports/not-a-uuid",
			body: `{"status":"dismissed","reviewedBy":9}`,
		},
		{
			name: "unknown status",
			path: "/v1/reports/6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			body: `{"status":"escalated","reviewedBy":9}`,
		},
		{
			name: "pending is not a decision",
			path: "/v1/reports/6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			body: `{"status":"pending","reviewedBy":9}`,
		},
		{
			name: "missing reviewer",
			path: "/v1/reports/6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			body: `{"status":"dismissed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPatch, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			require.NoError(t, router.ServeHTTPError(rec, req))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
