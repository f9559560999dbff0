package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"phonereg/pkg/platform/middleware/cors"
	"phonereg/pkg/platform/middleware/metadata"
	"phonereg/pkg/platform/middleware/requestid"
	"phonereg/pkg/platform/middleware/requesttime"
	"phonereg/pkg/requestcontext"
	"phonereg/pkg/testutil"
)

func TestRequestID(t *testing.T) {
	testutil.Given(t, "the request ID middleware", func(t *testing.T) {
		var seen string
		h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = requestcontext.RequestID(r.Context())
		}))

		testutil.When(t, "the caller supplies an ID", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(requestid.Header, "abc-123")
			rec := testutil.DoRequest(h, req)

			testutil.Then(t, "it is propagated and echoed", func(t *testing.T) {
				assert.Equal(t, "abc-123", seen)
				assert.Equal(t, "abc-123", rec.Header().Get(requestid.Header))
			})
		})

		testutil.When(t, "no ID is supplied", func(t *testing.T) {
			rec := testutil.DoRequest(h, httptest.NewRequest(http.MethodGet, "/", nil))

			testutil.Then(t, "one is generated", func(t *testing.T) {
				assert.NotEmpty(t, seen)
				assert.Equal(t, seen, rec.Header().Get(requestid.Header))
			})
		})
	})
}

func TestClientMetadata(t *testing.T) {
	cases := []struct {
		name   string
		setup  func(r *http.Request)
		wantIP string
	}{
		{
			name:   "forwarded for takes the first hop",
			setup:  func(r *http.Request) { r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1") },
			wantIP: "203.0.113.7",
		},
		{
			name:   "real IP header",
			setup:  func(r *http.Request) { r.Header.Set("X-Real-IP", " 198.51.100.4 ") },
			wantIP: "198.51.100.4",
		},
		{
			name:   "remote address without port",
			setup:  func(r *http.Request) { r.RemoteAddr = "192.0.2.1:5555" },
			wantIP: "192.0.2.1",
		},
		{
			name:   "ipv6 remote address",
			setup:  func(r *http.Request) { r.RemoteAddr = "[::1]:5555" },
			wantIP: "::1",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ip, ua string
			h := metadata.ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ip = requestcontext.ClientIP(r.Context())
				ua = requestcontext.UserAgent(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("User-Agent", "test-agent")
			tc.setup(req)

			testutil.DoRequest(h, req)
			assert.Equal(t, tc.wantIP, ip)
			assert.Equal(t, "test-agent", ua)
		})
	}
}

func TestRequestTime(t *testing.T) {
	var first, second time.Time
	h := requesttime.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		first = requestcontext.Now(r.Context())
		time.Sleep(time.Millisecond)
		second = requestcontext.Now(r.Context())
	}))

	testutil.DoRequest(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, first, second, "time is fixed for the whole request")
}

func TestCORS(t *testing.T) {
	called := false
	h := cors.AllowAll(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	t.Run("preflight is answered directly", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodOptions, "/api/registration", nil)
		req.Header.Set("Origin", "http://localhost:8080")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := testutil.DoRequest(h, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	})

	t.Run("simple request passes through", func(t *testing.T) {
		called = false
		rec := testutil.DoRequest(h, httptest.NewRequest(http.MethodGet, "/api/phone/count", nil))

		assert.True(t, called)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
