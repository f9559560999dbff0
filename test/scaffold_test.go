package test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	httptransport "phonereg/internal/transport/http"
	"phonereg/pkg/testutil"
)

func TestRouterScaffold(t *testing.T) {
	testutil.Given(t, "the HTTP router with no API modules", func(t *testing.T) {
		router := httptransport.NewRouter(httptransport.RouterDeps{})

		testutil.When(t, "calling GET /health", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			testutil.Then(t, "it should report healthy", func(t *testing.T) {
				if rec.Code != http.StatusOK {
					t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
				}
			})
		})

		testutil.When(t, "calling POST /api/phone/validate", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/phone/validate", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			testutil.Then(t, "it should respond with not found", func(t *testing.T) {
				if rec.Code != http.StatusNotFound {
					t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
				}
			})
		})
	})
}
