package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Action names a recorded audit action.
type Action string

const (
	ActionRegistrationAccepted Action = "registration_accepted"
	ActionRegistrationDenied   Action = "registration_denied"
)

// Decision outcomes.
const (
	DecisionAccepted = "accepted"
	DecisionDenied   = "denied"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores can fan out.
type Event struct {
	Timestamp time.Time
	Action    Action
	Decision  string
	Reason    string
	// SubjectHash is a SHA-256 hex digest of the evaluated identifier (the phone
	// number), kept so the trail can be correlated without storing raw PII.
	SubjectHash string
	RequestID   string
	ClientIP    string
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// HashSubject returns the hex SHA-256 digest of an identifier.
func HashSubject(subject string) string {
	sum := sha256.Sum256([]byte(subject))
	return hex.EncodeToString(sum[:])
}
