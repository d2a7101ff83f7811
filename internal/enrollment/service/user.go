package service

import (
	"context"
	"strconv"

	"trainhub/internal/enrollment/lifecycle"
	"trainhub/internal/enrollment/models"
	"trainhub/internal/enrollment/policy"
	id "trainhub/pkg/domain"
	dErrors "trainhub/pkg/domain-errors"
	audit "trainhub/pkg/platform/audit"
	"trainhub/pkg/requestcontext"
)

// ArchiveResult summarises what the archival cascade unwound.
type ArchiveResult struct {
	User                   *models.User `json:"user"`
	WithdrawnInterests     int          `json:"withdrawn_interests"`
	CancelledRegistrations int          `json:"cancelled_registrations"`
}

// ArchiveUser withdraws the user's active interests, cancels their active
// registrations with refunds, and marks the account archived. Historical records
// are left untouched.
func (s *Service) ArchiveUser(ctx context.Context, actor policy.Actor, userID id.UserID) (_ *ArchiveResult, err error) {
	ctx, finish := s.start(ctx, "archive_user", userAttr(userID))
	defer finish(&err)
	defer func() { s.observe("user", "archive", err) }()

	if err := policy.RequireRH(s.authorizer, actor); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	var result *ArchiveResult
	var moves ledgerMoves
	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		user, err := store.LockUser(ctx, userID)
		if err != nil {
			return translate(err, "user not found")
		}
		if user.Archived {
			return dErrors.New(dErrors.CodeInvalidTransition, "user is already archived")
		}
		res := &ArchiveResult{User: user}

		interests, err := store.ListInterestsByUser(ctx, user.ID)
		if err != nil {
			return translate(err, "interest not found")
		}
		for _, in := range interests {
			if !in.Status.IsActive() {
				continue
			}
			out, err := lifecycle.NextInterest(in, lifecycle.ActionWithdraw, lifecycle.InterestContext{Acting: lifecycle.ActingSystem})
			if err != nil {
				return err
			}
			if err := moves.apply(user, out.Delta); err != nil {
				return err
			}
			out.Apply(in, actor.ID, now)
			if err := store.UpdateInterest(ctx, in); err != nil {
				return translate(err, "interest not found")
			}
			if err := s.emit(ctx, audit.EventInterestWithdrawn, interestEvent(in, actor)); err != nil {
				return err
			}
			res.WithdrawnInterests++
		}

		registrations, err := store.ListRegistrationsByUser(ctx, user.ID)
		if err != nil {
			return translate(err, "registration not found")
		}
		for _, reg := range registrations {
			if !reg.Status.IsActive() {
				continue
			}
			out, err := lifecycle.NextRegistration(reg, lifecycle.ActionCancel)
			if err != nil {
				return err
			}
			if err := moves.apply(user, out.Delta); err != nil {
				return err
			}
			out.Apply(reg, actor.ID, now)
			if err := store.UpdateRegistration(ctx, reg); err != nil {
				return translate(err, "registration not found")
			}
			if err := s.emit(ctx, audit.EventRegistrationCancelled, registrationEvent(reg, actor)); err != nil {
				return err
			}
			res.CancelledRegistrations++
		}

		archivedAt := now
		user.Archived = true
		user.ArchivedAt = &archivedAt
		if err := store.UpdateUser(ctx, user); err != nil {
			return translate(err, "user not found")
		}
		result = res
		return s.emit(ctx, audit.EventUserArchived, audit.Event{
			UserID:  user.ID,
			Subject: user.ID.String(),
			Status:  "archived",
			Reason:  "withdrawn=" + strconv.Itoa(res.WithdrawnInterests) + " cancelled=" + strconv.Itoa(res.CancelledRegistrations),
			ActorID: actorString(actor),
		})
	})
	if err != nil {
		return nil, err
	}
	s.recordLedger(moves)
	s.metrics.IncrementArchivedUsers()
	return result, nil
}

// DeleteUser purges the user with every interest and registration they own.
func (s *Service) DeleteUser(ctx context.Context, actor policy.Actor, userID id.UserID) (err error) {
	ctx, finish := s.start(ctx, "delete_user", userAttr(userID))
	defer finish(&err)
	defer func() { s.observe("user", "delete", err) }()

	if err := policy.RequireRH(s.authorizer, actor); err != nil {
		return err
	}
	return s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		user, err := store.LockUser(ctx, userID)
		if err != nil {
			return translate(err, "user not found")
		}
		if err := store.DeleteUser(ctx, user.ID); err != nil {
			return translate(err, "user not found")
		}
		return s.emit(ctx, audit.EventUserDeleted, audit.Event{
			UserID:  user.ID,
			Subject: user.ID.String(),
			Status:  "deleted",
			ActorID: actorString(actor),
		})
	})
}

// GetLedger returns the user's quota ledger (self or RH).
func (s *Service) GetLedger(ctx context.Context, actor policy.Actor, userID id.UserID) (_ models.QuotaLedger, err error) {
	ctx, finish := s.start(ctx, "get_ledger", userAttr(userID))
	defer finish(&err)

	if err := policy.CanViewUser(s.authorizer, actor, userID); err != nil {
		return models.QuotaLedger{}, err
	}
	var ledger models.QuotaLedger
	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		user, err := store.GetUser(ctx, userID)
		if err != nil {
			return translate(err, "user not found")
		}
		ledger = user.Ledger
		return nil
	})
	return ledger, err
}

// CoachValidationOnly reports the current setting.
func (s *Service) CoachValidationOnly(ctx context.Context) (bool, error) {
	enabled, err := s.settings.CoachValidationOnly(ctx)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read settings")
	}
	return enabled, nil
}

// SetCoachValidationOnly flips whether coach approval alone approves an interest (RH only).
func (s *Service) SetCoachValidationOnly(ctx context.Context, actor policy.Actor, enabled bool) (err error) {
	ctx, finish := s.start(ctx, "set_coach_validation_only")
	defer finish(&err)

	if err := policy.RequireRH(s.authorizer, actor); err != nil {
		return err
	}
	if err := s.settings.SetCoachValidationOnly(ctx, enabled); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update settings")
	}
	if err := s.emit(ctx, audit.EventSettingChanged, audit.Event{
		Subject: "coach_validation_only",
		Status:  strconv.FormatBool(enabled),
		ActorID: actorString(actor),
	}); err != nil {
		s.logger.ErrorContext(ctx, "setting changed but audit write failed", "error", err)
	}
	return nil
}
