package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"trainhub/internal/enrollment/lifecycle"
	"trainhub/internal/enrollment/models"
	"trainhub/internal/enrollment/policy"
	id "trainhub/pkg/domain"
	dErrors "trainhub/pkg/domain-errors"
	audit "trainhub/pkg/platform/audit"
	"trainhub/pkg/platform/sentinel"
	"trainhub/pkg/requestcontext"
)

// CreateRegistrationRequest books a seat. UserID defaults to the actor; RH may
// register someone else. Priority may be empty when an approved interest converts.
type CreateRegistrationRequest struct {
	SessionID id.SessionID
	Priority  id.Priority
	UserID    *id.UserID
}

// CreateRegistration books a seat in a session. An approved interest for the same
// formation is converted and the registration starts validated with the interest's
// quota slot; otherwise it starts pending and consumes nothing until RH validates.
// A pending interest for the formation must be decided first.
func (s *Service) CreateRegistration(ctx context.Context, actor policy.Actor, req CreateRegistrationRequest) (_ *models.Registration, err error) {
	userID := actor.ID
	if req.UserID != nil {
		userID = *req.UserID
	}
	ctx, finish := s.start(ctx, "create_registration", userAttr(userID), attribute.String("session.id", req.SessionID.String()))
	defer finish(&err)
	defer func() { s.observe("registration", "create", err) }()

	if err := policy.CanEnroll(s.authorizer, actor, userID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	var created *models.Registration
	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		user, err := store.LockUser(ctx, userID)
		if err != nil {
			return translate(err, "user not found")
		}
		if err := ensureActive(user); err != nil {
			return err
		}
		session, err := store.LockSession(ctx, req.SessionID)
		if err != nil {
			return translate(err, "session not found")
		}
		active, err := store.CountActiveRegistrations(ctx, session.ID)
		if err != nil {
			return translate(err, "session not found")
		}
		registered, err := store.HasRegistrationFor(ctx, user.ID, session.FormationID)
		if err != nil {
			return translate(err, "registration not found")
		}
		interest, err := store.FindActiveInterest(ctx, user.ID, session.FormationID)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return translate(err, "interest not found")
		}
		decision, err := lifecycle.DecideEnrollment(lifecycle.Enrollment{
			Session:               session,
			ActiveCount:           active,
			HasActiveRegistration: registered,
			Interest:              interest,
			Priority:              req.Priority,
		})
		if err != nil {
			return err
		}

		reg := &models.Registration{
			ID:            id.RegistrationID(uuid.New()),
			UserID:        user.ID,
			SessionID:     session.ID,
			FormationID:   session.FormationID,
			Priority:      decision.Priority,
			Status:        decision.Status,
			RegisteredAt:  now,
			QuotaReserved: decision.QuotaReserved,
		}

		if decision.ConvertInterest {
			approved := interest
			out, err := lifecycle.NextInterest(approved, lifecycle.ActionConvert, lifecycle.InterestContext{Acting: lifecycle.ActingSystem})
			if err != nil {
				return err
			}
			out.Apply(approved, actor.ID, now)
			if err := store.UpdateInterest(ctx, approved); err != nil {
				return translate(err, "interest not found")
			}
			interestID := approved.ID
			reg.InterestID = &interestID
			if err := s.emit(ctx, audit.EventInterestConverted, interestEvent(approved, actor)); err != nil {
				return err
			}
		}

		if err := store.CreateRegistration(ctx, reg); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeDuplicateEnrollment, "already registered for this formation")
			}
			return translate(err, "registration not found")
		}
		created = reg
		return s.emit(ctx, audit.EventRegistrationCreated, registrationEvent(reg, actor))
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DecideRegistration validates, cancels or completes a registration.
func (s *Service) DecideRegistration(ctx context.Context, actor policy.Actor, registrationID id.RegistrationID, action lifecycle.Action) (_ *models.Registration, err error) {
	ctx, finish := s.start(ctx, "decide_registration",
		attribute.String("registration.id", registrationID.String()),
		attribute.String("action", string(action)))
	defer finish(&err)
	defer func() { s.observe("registration", string(action), err) }()

	now := requestcontext.Now(ctx)
	var result *models.Registration
	var moves ledgerMoves
	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		reg, err := store.GetRegistration(ctx, registrationID)
		if err != nil {
			return translate(err, "registration not found")
		}
		owner, err := store.LockUser(ctx, reg.UserID)
		if err != nil {
			return translate(err, "user not found")
		}
		reg, err = store.GetRegistration(ctx, registrationID)
		if err != nil {
			return translate(err, "registration not found")
		}
		if err := policy.CanDecideRegistration(s.authorizer, actor, action, reg); err != nil {
			return err
		}

		out, err := lifecycle.NextRegistration(reg, action)
		if err != nil {
			return err
		}
		if err := moves.apply(owner, out.Delta); err != nil {
			return err
		}
		out.Apply(reg, actor.ID, now)
		if err := store.UpdateRegistration(ctx, reg); err != nil {
			return translate(err, "registration not found")
		}
		if !out.Delta.IsZero() {
			if err := store.UpdateUser(ctx, owner); err != nil {
				return translate(err, "user not found")
			}
		}
		result = reg
		return s.emit(ctx, registrationEventName(reg.Status), registrationEvent(reg, actor))
	})
	if err != nil {
		return nil, err
	}
	s.recordLedger(moves)
	return result, nil
}

// GetRegistration returns a registration visible to the actor (owner or RH).
func (s *Service) GetRegistration(ctx context.Context, actor policy.Actor, registrationID id.RegistrationID) (_ *models.Registration, err error) {
	ctx, finish := s.start(ctx, "get_registration", attribute.String("registration.id", registrationID.String()))
	defer finish(&err)

	var result *models.Registration
	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		reg, err := store.GetRegistration(ctx, registrationID)
		if err != nil {
			return translate(err, "registration not found")
		}
		if err := policy.CanViewUser(s.authorizer, actor, reg.UserID); err != nil {
			return err
		}
		result = reg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func registrationEventName(status models.RegistrationStatus) audit.AuditEvent {
	switch status {
	case models.RegistrationValidated:
		return audit.EventRegistrationValidated
	case models.RegistrationCancelled:
		return audit.EventRegistrationCancelled
	case models.RegistrationCompleted:
		return audit.EventRegistrationCompleted
	}
	return audit.EventRegistrationCreated
}

func registrationEvent(r *models.Registration, actor policy.Actor) audit.Event {
	return audit.Event{
		UserID:   r.UserID,
		Subject:  r.ID.String(),
		Priority: r.Priority.String(),
		Status:   r.Status.String(),
		ActorID:  actorString(actor),
	}
}
