package handler

import (
	"time"

	audit "phonereg/pkg/platform/audit"
)

// EventResponse is one audit entry. The client IP is withheld.
type EventResponse struct {
	Timestamp   time.Time `json:"timestamp"`
	Action      string    `json:"action"`
	Decision    string    `json:"decision"`
	Reason      string    `json:"reason,omitempty"`
	SubjectHash string    `json:"subject_hash,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// FromEvents converts events for the wire. It never returns nil.
func FromEvents(events []audit.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, EventResponse{
			Timestamp:   e.Timestamp,
			Action:      string(e.Action),
			Decision:    e.Decision,
			Reason:      e.Reason,
			SubjectHash: e.SubjectHash,
			RequestID:   e.RequestID,
		})
	}
	return out
}
