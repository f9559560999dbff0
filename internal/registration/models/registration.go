package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "phonereg/pkg/domain-errors"
)

// MsgMissingFields is the client-facing message for an incomplete registration.
const MsgMissingFields = "Name, email and phone are required"

// Registration is an accepted sign-up with a unique phone number.
type Registration struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// NewRegistration builds a Registration. A field is present when it is a
// non-empty string; whitespace counts. Name and email are stored trimmed, the
// phone exactly as given so the validator sees the raw input.
func NewRegistration(id uuid.UUID, name, email, phone string, now time.Time) (*Registration, error) {
	if name == "" || email == "" || phone == "" {
		return nil, dErrors.New(dErrors.CodeValidation, MsgMissingFields)
	}
	return &Registration{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Phone:     phone,
		CreatedAt: now,
	}, nil
}
