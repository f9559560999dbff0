package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TestContext holds the client and the last response of a scenario.
type TestContext struct {
	BaseURL string
	Client  *http.Client

	LastStatus int
	LastBody   []byte
}

// NewTestContext creates a context targeting baseURL.
func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Reset clears the previous response.
func (tc *TestContext) Reset() {
	tc.LastStatus = 0
	tc.LastBody = nil
}

// POST sends body as JSON. A string body is sent verbatim.
func (tc *TestContext) POST(path string, body any) error {
	var raw []byte
	switch b := body.(type) {
	case string:
		raw = []byte(b)
	default:
		var err error
		if raw, err = json.Marshal(body); err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}
	req, err := http.NewRequest(http.MethodPost, tc.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return tc.do(req)
}

// GET sends a GET request.
func (tc *TestContext) GET(path string) error {
	req, err := http.NewRequest(http.MethodGet, tc.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return tc.do(req)
}

func (tc *TestContext) do(req *http.Request) error {
	resp, err := tc.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	tc.LastStatus = resp.StatusCode
	tc.LastBody = body
	return nil
}

// Status returns the last response status.
func (tc *TestContext) Status() int {
	return tc.LastStatus
}

// ResponseField returns a top-level field of the last JSON object response.
// Nested fields use dots, e.g. "rules.hasNonZeroDigit".
func (tc *TestContext) ResponseField(field string) (any, error) {
	var current any
	if err := json.Unmarshal(tc.LastBody, &current); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}
	for _, part := range strings.Split(field, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q: not an object", field)
		}
		if current, ok = obj[part]; !ok {
			return nil, fmt.Errorf("field %q not found in %s", field, tc.LastBody)
		}
	}
	return current, nil
}

// ResponseArray returns the last response as a JSON array.
func (tc *TestContext) ResponseArray() ([]map[string]any, error) {
	var items []map[string]any
	if err := json.Unmarshal(tc.LastBody, &items); err != nil {
		return nil, fmt.Errorf("response is not a JSON array: %w", err)
	}
	return items, nil
}
