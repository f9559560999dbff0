// Package testutil holds the request builders and response assertions shared
// by handler and router tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonereg/pkg/platform/httputil"
)

// Registration outcomes as they appear in the status envelope.
const (
	StatusAccepted = "accepted"
	StatusDenied   = "denied"
)

// StatusEnvelope is the {"status","message"} body returned by registration.
type StatusEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewJSONRequest builds a request with a JSON body. A string body is sent
// verbatim so tests can post malformed JSON; nil sends no body; anything else
// is marshaled.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err, "failed to marshal request body")
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewRequest builds a request without a body.
func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

// DoRequest serves req and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// DecodeJSON decodes the response body into T, failing the test on malformed
// JSON.
func DecodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "response is not JSON: %s", rr.Body.String())
	return out
}

// AssertStatus asserts the response status code.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status code, body: %s", rr.Body.String())
}

// AssertStatusOK asserts a 200 response.
func AssertStatusOK(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	AssertStatus(t, rr, http.StatusOK)
}

// AssertError asserts the status and the code of an {"error","error_description"}
// envelope and returns the envelope for further checks.
func AssertError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) httputil.ErrorResponse {
	t.Helper()
	AssertStatus(t, rr, status)
	resp := DecodeJSON[httputil.ErrorResponse](t, rr)
	assert.Equal(t, code, resp.Error, "unexpected error code")
	return resp
}

// AssertAccepted asserts a 201 registration acknowledgement.
func AssertAccepted(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	AssertStatus(t, rr, http.StatusCreated)
	resp := DecodeJSON[StatusEnvelope](t, rr)
	assert.Equal(t, StatusAccepted, resp.Status)
	assert.Equal(t, "Registration successful", resp.Message)
}

// AssertDenied asserts a registration denial with the given status and message.
func AssertDenied(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	AssertStatus(t, rr, status)
	resp := DecodeJSON[StatusEnvelope](t, rr)
	assert.Equal(t, StatusDenied, resp.Status)
	assert.Equal(t, message, resp.Message)
}

// AssertJSONField asserts a top-level field of a JSON object response.
func AssertJSONField(t *testing.T, rr *httptest.ResponseRecorder, key string, expected any) {
	t.Helper()
	body := DecodeJSON[map[string]any](t, rr)
	assert.Equal(t, expected, body[key], "unexpected value for key %q", key)
}
