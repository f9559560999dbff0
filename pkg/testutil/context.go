package testutil

import (
	"net/http"

	"phonereg/pkg/requestcontext"
)

// WithRequestID tags req as the request ID middleware would, so log and audit
// assertions can look for a known ID.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
