package lifecycle

import (
	"time"

	"trainhub/internal/enrollment/models"
	id "trainhub/pkg/domain"
)

// InterestContext carries what an interest transition depends on besides the record.
type InterestContext struct {
	Acting              Acting
	CoachValidationOnly bool
}

// InterestOutcome is the computed result of an interest transition.
type InterestOutcome struct {
	Status      models.InterestStatus
	CoachStatus *models.CoachStatus
	// CoachDecision is set when the coach approved; the validation timestamp is recorded.
	CoachDecision bool
	// Final is set when the transition ends the review (DecidedAt/DecidedBy are recorded).
	Final bool
	Delta models.LedgerDelta
}

// NextInterest computes the transition of in under action.
//
// Errors: CodeInvalidTransition when the action is not allowed from the current state,
// CodeInvalidInput for unknown actions. Authorization is checked by the caller.
func NextInterest(in *models.Interest, action Action, ctx InterestContext) (InterestOutcome, error) {
	if in.Status.IsTerminal() {
		return InterestOutcome{}, invalidTransition("interest is already " + in.Status.String())
	}

	switch action {
	case ActionApprove:
		if ctx.Acting == ActingCoach {
			return coachApprove(in, ctx)
		}
		return rhApprove(in)
	case ActionReject:
		if ctx.Acting == ActingCoach && in.Status != models.InterestPending {
			return InterestOutcome{}, invalidTransition("coach can only reject a pending interest")
		}
		if ctx.Acting == ActingCoach && !in.IsGated() {
			return InterestOutcome{}, invalidTransition("interest has no coach validation step")
		}
		if ctx.Acting == ActingCoach && !in.AwaitingCoach() {
			return InterestOutcome{}, invalidTransition("coach has already approved this interest")
		}
		return InterestOutcome{
			Status:      models.InterestRejected,
			CoachStatus: in.CoachStatus,
			Final:       true,
			Delta:       models.Release(in.Priority),
		}, nil
	case ActionWithdraw:
		return InterestOutcome{
			Status:      models.InterestWithdrawn,
			CoachStatus: in.CoachStatus,
			Final:       true,
			Delta:       models.Release(in.Priority),
		}, nil
	case ActionConvert:
		if in.Status != models.InterestApproved {
			return InterestOutcome{}, invalidTransition("only an approved interest can be converted")
		}
		return InterestOutcome{Status: models.InterestConverted, CoachStatus: in.CoachStatus}, nil
	}
	return InterestOutcome{}, invalidAction(action)
}

func coachApprove(in *models.Interest, ctx InterestContext) (InterestOutcome, error) {
	if !in.IsGated() {
		return InterestOutcome{}, invalidTransition("interest has no coach validation step")
	}
	if in.Status != models.InterestPending || !in.AwaitingCoach() {
		return InterestOutcome{}, invalidTransition("coach has already approved this interest")
	}
	approved := models.CoachApproved
	out := InterestOutcome{
		Status:        models.InterestPending,
		CoachStatus:   &approved,
		CoachDecision: true,
	}
	if ctx.CoachValidationOnly {
		out.Status = models.InterestApproved
		out.Final = true
	}
	return out, nil
}

func rhApprove(in *models.Interest) (InterestOutcome, error) {
	if in.Status == models.InterestApproved {
		return InterestOutcome{}, invalidTransition("interest is already approved")
	}
	if in.AwaitingCoach() {
		return InterestOutcome{}, invalidTransition("awaiting coach validation")
	}
	return InterestOutcome{
		Status:      models.InterestApproved,
		CoachStatus: in.CoachStatus,
		Final:       true,
	}, nil
}

// Apply writes the outcome onto in. The ledger delta is applied separately.
func (o InterestOutcome) Apply(in *models.Interest, actor id.UserID, now time.Time) {
	in.Status = o.Status
	in.CoachStatus = o.CoachStatus
	if o.CoachDecision {
		at := now
		in.CoachValidatedAt = &at
	}
	if o.Final {
		at := now
		by := actor
		in.DecidedAt = &at
		in.DecidedBy = &by
	}
}
