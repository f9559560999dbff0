package handler

import (
	"time"

	"phonereg/internal/registration/models"
)

// Registration statuses.
const (
	StatusAccepted = "accepted"
	StatusDenied   = "denied"
)

// MsgRegistered is returned for an accepted registration.
const MsgRegistered = "Registration successful"

// StatusResponse reports the outcome of a registration attempt.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RegistrationResponse is one entry of GET /registrations.
type RegistrationResponse struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// FromRegistrations converts registrations to responses. The result is never nil.
func FromRegistrations(regs []*models.Registration) []RegistrationResponse {
	out := make([]RegistrationResponse, 0, len(regs))
	for _, reg := range regs {
		out = append(out, RegistrationResponse{
			Name:      reg.Name,
			Email:     reg.Email,
			Phone:     reg.Phone,
			CreatedAt: reg.CreatedAt,
		})
	}
	return out
}
