package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,PhoneValidator,AuditPublisher,TxRunner

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"phonereg/internal/phone"
	"phonereg/internal/registration/metrics"
	"phonereg/internal/registration/models"
	dErrors "phonereg/pkg/domain-errors"
	audit "phonereg/pkg/platform/audit"
	"phonereg/pkg/platform/sentinel"
	"phonereg/pkg/platform/tx"
	"phonereg/pkg/requestcontext"
)

// Client-facing messages for rejected registrations.
const (
	MsgInvalidPhone   = "Invalid phone number"
	MsgDuplicatePhone = "Phone already registered"
)

type Store interface {
	Save(ctx context.Context, reg *models.Registration) error
	ListNewestFirst(ctx context.Context) ([]*models.Registration, error)
	CountDistinctPhones(ctx context.Context) (int, error)
}

type PhoneValidator interface {
	Evaluate(ctx context.Context, number string) phone.Verdict
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// TxRunner runs fn in a transaction carried by the context it receives.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service accepts, lists and counts registrations.
type Service struct {
	store          Store
	validator      PhoneValidator
	tx             TxRunner
	auditPublisher AuditPublisher
	denials        AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithDenialPublisher routes denied-attempt events to their own publisher,
// typically a buffered one, since they are not part of any transaction.
// Without it denials go to the audit publisher.
func WithDenialPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.denials = publisher
	}
}

func WithTxRunner(runner TxRunner) Option {
	return func(s *Service) {
		s.tx = runner
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service. Without WithTxRunner the store is called directly.
func New(store Store, validator PhoneValidator, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("registration store is required")
	}
	if validator == nil {
		return nil, errors.New("phone validator is required")
	}
	s := &Service{
		store:     store,
		validator: validator,
		tx:        tx.NoopRunner{},
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register validates and stores a registration. The accepted audit event is
// written in the same transaction as the registration.
func (s *Service) Register(ctx context.Context, name, email, number string) (*models.Registration, error) {
	reg, err := models.NewRegistration(uuid.New(), name, email, number, requestcontext.Now(ctx))
	if err != nil {
		s.deny(ctx, metrics.OutcomeMissingFields, number)
		return nil, err
	}

	if verdict := s.validator.Evaluate(ctx, reg.Phone); !verdict.IsValid {
		s.deny(ctx, metrics.OutcomeInvalidPhone, reg.Phone)
		return nil, dErrors.New(dErrors.CodeUnprocessable, MsgInvalidPhone)
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Save(ctx, reg); err != nil {
			return err
		}
		return s.emit(ctx, s.auditPublisher, audit.ActionRegistrationAccepted, audit.DecisionAccepted, "", reg.Phone)
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			s.deny(ctx, metrics.OutcomeDuplicatePhone, reg.Phone)
			return nil, dErrors.New(dErrors.CodeConflict, MsgDuplicatePhone)
		}
		s.metrics.IncrementRegistration(metrics.OutcomeError)
		s.logger.ErrorContext(ctx, "failed to save registration",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save registration")
	}

	s.metrics.IncrementRegistration(metrics.OutcomeAccepted)
	s.logger.InfoContext(ctx, "registration accepted",
		"request_id", requestcontext.RequestID(ctx),
		"registration_id", reg.ID,
	)
	return reg, nil
}

// List returns all registrations, newest first.
func (s *Service) List(ctx context.Context) ([]*models.Registration, error) {
	regs, err := s.store.ListNewestFirst(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registrations")
	}
	return regs, nil
}

// CountDistinctPhones returns the number of distinct registered phones.
func (s *Service) CountDistinctPhones(ctx context.Context) (int, error) {
	count, err := s.store.CountDistinctPhones(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count registered phones")
	}
	return count, nil
}

// deny records a rejected attempt. Its audit event is best effort.
func (s *Service) deny(ctx context.Context, reason, number string) {
	s.metrics.IncrementRegistration(reason)
	s.logger.InfoContext(ctx, "registration denied",
		"request_id", requestcontext.RequestID(ctx),
		"reason", reason,
	)
	publisher := s.denials
	if publisher == nil {
		publisher = s.auditPublisher
	}
	if err := s.emit(ctx, publisher, audit.ActionRegistrationDenied, audit.DecisionDenied, reason, number); err != nil {
		s.metrics.IncrementAuditFailure()
		s.logger.WarnContext(ctx, "failed to audit denied registration",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}

func (s *Service) emit(ctx context.Context, publisher AuditPublisher, action audit.Action, decision, reason, number string) error {
	if publisher == nil {
		return nil
	}
	event := audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Action:    action,
		Decision:  decision,
		Reason:    reason,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
	}
	if number != "" {
		event.SubjectHash = audit.HashSubject(number)
	}
	return publisher.Emit(ctx, event)
}
