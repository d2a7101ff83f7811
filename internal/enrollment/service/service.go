// Package service orchestrates the interest/registration lifecycle.
//
// Each operation loads records inside one StoreTx transaction, asks the policy
// package whether the actor may act, asks the lifecycle package for the next state
// and ledger delta, then writes records, ledger and audit rows together.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"trainhub/internal/enrollment/metrics"
	"trainhub/internal/enrollment/models"
	"trainhub/internal/enrollment/policy"
	id "trainhub/pkg/domain"
	dErrors "trainhub/pkg/domain-errors"
	audit "trainhub/pkg/platform/audit"
	"trainhub/pkg/platform/sentinel"
	"trainhub/pkg/requestcontext"
)

const tracerName = "trainhub/internal/enrollment/service"

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service runs lifecycle operations.
type Service struct {
	tx             StoreTx
	settings       Settings
	authorizer     policy.Authorizer
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
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

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuthorizer(a policy.Authorizer) Option {
	return func(s *Service) {
		s.authorizer = a
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs a Service. Without WithAuthorizer the role-based authorizer is used.
func New(tx StoreTx, settings Settings, opts ...Option) (*Service, error) {
	if tx == nil {
		return nil, errors.New("store transaction is required")
	}
	if settings == nil {
		return nil, errors.New("settings provider is required")
	}
	s := &Service{
		tx:         tx,
		settings:   settings,
		authorizer: policy.NewRoleAuthorizer(),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s, nil
}

// start opens a span and returns a finisher that records duration, outcome and error.
func (s *Service) start(ctx context.Context, operation string, attributes ...attribute.KeyValue) (context.Context, func(*error)) {
	begin := time.Now()
	ctx, span := s.tracer.Start(ctx, "enrollment."+operation, trace.WithAttributes(attributes...))
	return ctx, func(errp *error) {
		s.metrics.ObserveOperation(operation, begin)
		if errp != nil && *errp != nil {
			span.RecordError(*errp)
			span.SetStatus(codes.Error, string(dErrors.CodeOf(*errp)))
		}
		span.End()
	}
}

// emit logs the event and writes it through the audit publisher. A failed write
// is returned so the surrounding transaction rolls back.
func (s *Service) emit(ctx context.Context, event audit.AuditEvent, e audit.Event) error {
	e.Action = string(event)
	args := []any{
		"event", string(event),
		"log_type", "audit",
		"subject", e.Subject,
	}
	if !e.UserID.IsNil() {
		args = append(args, "user_id", e.UserID.String())
	}
	if e.Status != "" {
		args = append(args, "status", e.Status)
	}
	if e.Priority != "" {
		args = append(args, "priority", e.Priority)
	}
	if e.ActorID != "" {
		args = append(args, "actor_id", e.ActorID)
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	s.logger.InfoContext(ctx, string(event), args...)

	if s.auditPublisher == nil {
		return nil
	}
	return s.auditPublisher.Emit(ctx, e)
}

// ledgerMoves collects the deltas applied inside a transaction. They are
// counted by recordLedger once the transaction has committed.
type ledgerMoves []models.LedgerDelta

func (m *ledgerMoves) apply(user *models.User, delta models.LedgerDelta) error {
	if delta.IsZero() {
		return nil
	}
	if err := delta.Apply(&user.Ledger); err != nil {
		return err
	}
	*m = append(*m, delta)
	return nil
}

func (s *Service) recordLedger(moves ledgerMoves) {
	for _, delta := range moves {
		s.metrics.ObserveLedger(delta.Op.String(), delta.Priority.String())
	}
}

func (s *Service) observe(entity, action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(dErrors.CodeOf(err))
	}
	s.metrics.ObserveTransition(entity, action, outcome)
}

// translate maps store errors to coded errors. Coded errors pass through.
func translate(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, notFound)
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "concurrent modification, retry")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "operation timed out")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "persistence failure")
}

func ensureActive(user *models.User) error {
	if user.Archived {
		return dErrors.New(dErrors.CodeInvalidTransition, "user is archived")
	}
	return nil
}

func actorString(actor policy.Actor) string {
	if actor.ID.IsNil() {
		return ""
	}
	return actor.ID.String()
}

func userAttr(userID id.UserID) attribute.KeyValue {
	return attribute.String("user.id", userID.String())
}
