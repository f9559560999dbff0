package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"phonereg/internal/registration/models"
	dErrors "phonereg/pkg/domain-errors"
	"phonereg/pkg/platform/httputil"
	"phonereg/pkg/requestcontext"
)

// Service defines the registration operations the handler needs.
type Service interface {
	Register(ctx context.Context, name, email, phone string) (*models.Registration, error)
	List(ctx context.Context) ([]*models.Registration, error)
}

// Handler wires registration endpoints to the registration service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a registration handler.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts registration endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/registration", h.HandleRegister)
	r.Get("/registrations", h.HandleList)
}

// HandleRegister handles POST /registration.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if _, err := h.service.Register(ctx, req.Name, req.Email, req.Phone); err != nil {
		if de, ok := dErrors.As(err); ok && isDenial(de.Code) {
			httputil.WriteJSON(w, dErrors.HTTPStatus(de.Code), StatusResponse{
				Status:  StatusDenied,
				Message: de.Message,
			})
			return
		}
		h.logger.ErrorContext(ctx, "registration failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, StatusResponse{
		Status:  StatusAccepted,
		Message: MsgRegistered,
	})
}

// HandleList handles GET /registrations.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	regs, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list registrations",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRegistrations(regs))
}

// isDenial reports whether code is answered with the denied status envelope.
func isDenial(code dErrors.Code) bool {
	switch code {
	case dErrors.CodeValidation, dErrors.CodeUnprocessable, dErrors.CodeConflict:
		return true
	}
	return false
}
