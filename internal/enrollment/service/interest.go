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

// ExpressInterestRequest is the actor's intent toward a formation or a custom request.
type ExpressInterestRequest struct {
	FormationID *id.FormationID
	CustomTitle string
	Priority    id.Priority
}

// ExpressInterest records a pending interest for the actor and reserves its P1/P2 slot.
func (s *Service) ExpressInterest(ctx context.Context, actor policy.Actor, req ExpressInterestRequest) (_ *models.Interest, err error) {
	ctx, finish := s.start(ctx, "express_interest", userAttr(actor.ID), attribute.String("priority", req.Priority.String()))
	defer finish(&err)
	defer func() { s.observe("interest", "express", err) }()

	now := requestcontext.Now(ctx)
	var created *models.Interest
	var moves ledgerMoves
	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		user, err := store.LockUser(ctx, actor.ID)
		if err != nil {
			return translate(err, "user not found")
		}
		if err := ensureActive(user); err != nil {
			return err
		}

		in, err := models.NewInterest(id.InterestID(uuid.New()), user.ID, req.FormationID, req.CustomTitle, req.Priority, user.HasCoach(), now)
		if err != nil {
			return err
		}
		if !in.IsOffCatalog() {
			existing, err := store.FindActiveInterest(ctx, user.ID, *in.FormationID)
			switch {
			case err == nil && existing != nil:
				return dErrors.New(dErrors.CodeDuplicateInterest, "an active interest already exists for this formation")
			case err != nil && !errors.Is(err, sentinel.ErrNotFound):
				return translate(err, "interest not found")
			}
		}

		if err := moves.apply(user, models.Reserve(in.Priority)); err != nil {
			return err
		}
		if err := store.CreateInterest(ctx, in); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeDuplicateInterest, "an active interest already exists for this formation")
			}
			return translate(err, "interest not found")
		}
		if err := store.UpdateUser(ctx, user); err != nil {
			return translate(err, "user not found")
		}
		created = in
		return s.emit(ctx, audit.EventInterestExpressed, interestEvent(in, actor))
	})
	if err != nil {
		return nil, err
	}
	s.recordLedger(moves)
	return created, nil
}

// DecideInterest applies an approve or reject decision taken in the given capacity.
func (s *Service) DecideInterest(ctx context.Context, actor policy.Actor, interestID id.InterestID, action lifecycle.Action, acting lifecycle.Acting) (_ *models.Interest, err error) {
	ctx, finish := s.start(ctx, "decide_interest",
		attribute.String("interest.id", interestID.String()),
		attribute.String("action", string(action)),
		attribute.String("acting", string(acting)))
	defer finish(&err)
	defer func() { s.observe("interest", string(action), err) }()

	if action != lifecycle.ActionApprove && action != lifecycle.ActionReject {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "action must be approve or reject")
	}
	coachOnly, err := s.settings.CoachValidationOnly(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read settings")
	}

	return s.transitionInterest(ctx, actor, interestID, func(in *models.Interest, owner *models.User) (lifecycle.InterestOutcome, error) {
		if err := policy.CanDecideInterest(s.authorizer, actor, acting, owner); err != nil {
			return lifecycle.InterestOutcome{}, err
		}
		return lifecycle.NextInterest(in, action, lifecycle.InterestContext{Acting: acting, CoachValidationOnly: coachOnly})
	})
}

// WithdrawInterest lets the owner abandon a pending or approved interest.
func (s *Service) WithdrawInterest(ctx context.Context, actor policy.Actor, interestID id.InterestID) (_ *models.Interest, err error) {
	ctx, finish := s.start(ctx, "withdraw_interest", attribute.String("interest.id", interestID.String()))
	defer finish(&err)
	defer func() { s.observe("interest", string(lifecycle.ActionWithdraw), err) }()

	return s.transitionInterest(ctx, actor, interestID, func(in *models.Interest, _ *models.User) (lifecycle.InterestOutcome, error) {
		if err := policy.CanWithdrawInterest(s.authorizer, actor, in); err != nil {
			return lifecycle.InterestOutcome{}, err
		}
		return lifecycle.NextInterest(in, lifecycle.ActionWithdraw, lifecycle.InterestContext{Acting: lifecycle.ActingOwner})
	})
}

type interestDecider func(in *models.Interest, owner *models.User) (lifecycle.InterestOutcome, error)

// transitionInterest locks the owner, re-reads the interest under the lock, and
// applies the decided outcome with its ledger delta.
func (s *Service) transitionInterest(ctx context.Context, actor policy.Actor, interestID id.InterestID, decide interestDecider) (*models.Interest, error) {
	now := requestcontext.Now(ctx)
	var result *models.Interest
	var moves ledgerMoves
	err := s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		owner, in, err := lockInterestOwner(ctx, store, interestID)
		if err != nil {
			return err
		}
		out, err := decide(in, owner)
		if err != nil {
			return err
		}
		if err := moves.apply(owner, out.Delta); err != nil {
			return err
		}
		out.Apply(in, actor.ID, now)
		if err := store.UpdateInterest(ctx, in); err != nil {
			return translate(err, "interest not found")
		}
		if !out.Delta.IsZero() {
			if err := store.UpdateUser(ctx, owner); err != nil {
				return translate(err, "user not found")
			}
		}
		result = in
		return s.emit(ctx, interestEventName(in, out), interestEvent(in, actor))
	})
	if err != nil {
		return nil, err
	}
	s.recordLedger(moves)
	return result, nil
}

// DeleteInterest removes an interest (RH only). An active interest gives its slot back.
func (s *Service) DeleteInterest(ctx context.Context, actor policy.Actor, interestID id.InterestID) (err error) {
	ctx, finish := s.start(ctx, "delete_interest", attribute.String("interest.id", interestID.String()))
	defer finish(&err)
	defer func() { s.observe("interest", "delete", err) }()

	if err := policy.RequireRH(s.authorizer, actor); err != nil {
		return err
	}
	var moves ledgerMoves
	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		owner, in, err := lockInterestOwner(ctx, store, interestID)
		if err != nil {
			return err
		}
		if in.Status.IsActive() {
			if err := moves.apply(owner, models.Release(in.Priority)); err != nil {
				return err
			}
			if err := store.UpdateUser(ctx, owner); err != nil {
				return translate(err, "user not found")
			}
		}
		if err := store.DeleteInterest(ctx, in.ID); err != nil {
			return translate(err, "interest not found")
		}
		return s.emit(ctx, audit.EventInterestDeleted, interestEvent(in, actor))
	})
	if err != nil {
		return err
	}
	s.recordLedger(moves)
	return nil
}

// GetInterest returns an interest visible to the actor.
func (s *Service) GetInterest(ctx context.Context, actor policy.Actor, interestID id.InterestID) (_ *models.Interest, err error) {
	ctx, finish := s.start(ctx, "get_interest", attribute.String("interest.id", interestID.String()))
	defer finish(&err)

	var result *models.Interest
	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		in, err := store.GetInterest(ctx, interestID)
		if err != nil {
			return translate(err, "interest not found")
		}
		owner, err := store.GetUser(ctx, in.UserID)
		if err != nil {
			return translate(err, "user not found")
		}
		if err := policy.CanViewInterest(s.authorizer, actor, in, owner); err != nil {
			return err
		}
		result = in
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// lockInterestOwner reads the interest to find its owner, locks the owner, then
// re-reads the interest so the decision sees committed state.
func lockInterestOwner(ctx context.Context, store Store, interestID id.InterestID) (*models.User, *models.Interest, error) {
	in, err := store.GetInterest(ctx, interestID)
	if err != nil {
		return nil, nil, translate(err, "interest not found")
	}
	owner, err := store.LockUser(ctx, in.UserID)
	if err != nil {
		return nil, nil, translate(err, "user not found")
	}
	in, err = store.GetInterest(ctx, interestID)
	if err != nil {
		return nil, nil, translate(err, "interest not found")
	}
	return owner, in, nil
}

func interestEventName(in *models.Interest, out lifecycle.InterestOutcome) audit.AuditEvent {
	switch in.Status {
	case models.InterestApproved:
		return audit.EventInterestApproved
	case models.InterestRejected:
		return audit.EventInterestRejected
	case models.InterestWithdrawn:
		return audit.EventInterestWithdrawn
	case models.InterestConverted:
		return audit.EventInterestConverted
	}
	if out.CoachDecision {
		return audit.EventInterestCoachApproved
	}
	return audit.EventInterestExpressed
}

func interestEvent(in *models.Interest, actor policy.Actor) audit.Event {
	return audit.Event{
		UserID:   in.UserID,
		Subject:  in.ID.String(),
		Priority: in.Priority.String(),
		Status:   in.Status.String(),
		ActorID:  actorString(actor),
	}
}
