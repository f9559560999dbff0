package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,RegistrationCounter

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"phonereg/internal/phone"
	dErrors "phonereg/pkg/domain-errors"
	"phonereg/pkg/platform/httputil"
	"phonereg/pkg/requestcontext"
)

// Service defines the phone operations the handler needs.
type Service interface {
	Evaluate(ctx context.Context, number string) phone.Verdict
	ValidCount(ctx context.Context) (int, error)
}

// RegistrationCounter reports how many distinct phones are registered.
type RegistrationCounter interface {
	CountDistinctPhones(ctx context.Context) (int, error)
}

// Handler wires phone endpoints to the phone service.
type Handler struct {
	service       Service
	registrations RegistrationCounter
	logger        *slog.Logger
}

// New constructs a phone handler.
func New(service Service, registrations RegistrationCounter, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		service:       service,
		registrations: registrations,
		logger:        logger,
	}
}

// Register mounts phone endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/phone/validate", h.HandleValidate)
	r.Get("/phone/count", h.HandleCount)
}

// HandleValidate handles POST /phone/validate.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	number, isString := req.NumberString()
	if !isString {
		httputil.WriteJSON(w, http.StatusOK, phone.Verdict{})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.service.Evaluate(ctx, number))
}

// HandleCount handles GET /phone/count.
func (h *Handler) HandleCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	total, err := h.service.ValidCount(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count valid numbers",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count valid numbers"))
		return
	}

	registered, err := h.registrations.CountDistinctPhones(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count registered phones",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count registered phones"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, CountResponse{
		TotalPossibleValidNumbers: total,
		RegisteredValidNumbers:    registered,
	})
}
