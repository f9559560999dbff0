package handler

import (
	"bytes"
	"encoding/json"

	dErrors "phonereg/pkg/domain-errors"
)

// ValidateRequest is the body of POST /phone/validate. Number is kept raw so
// that a non-string value can be answered with a negative verdict instead of a
// decode error.
type ValidateRequest struct {
	Number json.RawMessage `json:"number"`
}

// Validate rejects an absent or empty number. Empty covers null, "", 0 and false.
func (r *ValidateRequest) Validate() error {
	if r == nil || isEmptyValue(r.Number) {
		return dErrors.New(dErrors.CodeBadRequest, "Number is required")
	}
	return nil
}

// NumberString returns the number when it was sent as a JSON string.
func (r *ValidateRequest) NumberString() (string, bool) {
	var s string
	if err := json.Unmarshal(r.Number, &s); err != nil {
		return "", false
	}
	return s, true
}

func isEmptyValue(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return true
	}
	switch string(raw) {
	case "null", `""`, "false":
		return true
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n == 0
	}
	return false
}
