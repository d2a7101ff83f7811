package lifecycle

import (
	"time"

	"trainhub/internal/enrollment/models"
	id "trainhub/pkg/domain"
	dErrors "trainhub/pkg/domain-errors"
)

// RegistrationOutcome is the computed result of a registration transition.
type RegistrationOutcome struct {
	Status        models.RegistrationStatus
	QuotaReserved bool
	Delta         models.LedgerDelta
}

// NextRegistration computes the transition of r under action.
//
// Validation consumes the P1/P2 slot unless the registration already owns it.
// Cancellation refunds only a slot the registration owns.
func NextRegistration(r *models.Registration, action Action) (RegistrationOutcome, error) {
	if r.Status.IsTerminal() {
		return RegistrationOutcome{}, invalidTransition("registration is already " + r.Status.String())
	}

	switch action {
	case ActionValidate:
		if r.Status != models.RegistrationPending {
			return RegistrationOutcome{}, invalidTransition("registration is already validated")
		}
		out := RegistrationOutcome{Status: models.RegistrationValidated, QuotaReserved: r.QuotaReserved}
		if r.Priority.IsQuotaBound() && !r.QuotaReserved {
			out.Delta = models.Reserve(r.Priority)
			out.QuotaReserved = true
		}
		return out, nil
	case ActionCancel:
		out := RegistrationOutcome{Status: models.RegistrationCancelled}
		if r.QuotaReserved {
			out.Delta = models.Release(r.Priority)
		}
		return out, nil
	case ActionComplete:
		if r.Status != models.RegistrationValidated {
			return RegistrationOutcome{}, invalidTransition("only a validated registration can be completed")
		}
		return RegistrationOutcome{Status: models.RegistrationCompleted, QuotaReserved: r.QuotaReserved}, nil
	}
	return RegistrationOutcome{}, invalidAction(action)
}

// Apply writes the outcome onto r. The ledger delta is applied separately.
func (o RegistrationOutcome) Apply(r *models.Registration, actor id.UserID, now time.Time) {
	r.Status = o.Status
	r.QuotaReserved = o.QuotaReserved
	at := now
	by := actor
	r.DecidedAt = &at
	r.DecidedBy = &by
}

// Enrollment is the input to a registration creation decision.
type Enrollment struct {
	Session *models.Session
	// ActiveCount is the number of pending+validated registrations on the session.
	ActiveCount int
	// HasActiveRegistration is set when the user already holds a non-cancelled
	// registration for the session's formation.
	HasActiveRegistration bool
	// Interest is the user's active interest for the formation, if any.
	Interest *models.Interest
	// Priority is optional when an approved interest converts; it must then match.
	Priority id.Priority
}

// EnrollmentOutcome describes the registration to create.
type EnrollmentOutcome struct {
	Status        models.RegistrationStatus
	Priority      id.Priority
	QuotaReserved bool
	// ConvertInterest is set when the approved interest must move to converted.
	ConvertInterest bool
}

// DecideEnrollment applies the capacity, uniqueness and conversion rules.
func DecideEnrollment(e Enrollment) (EnrollmentOutcome, error) {
	if !e.Session.HasSeat(e.ActiveCount) {
		return EnrollmentOutcome{}, dErrors.New(dErrors.CodeCapacityExceeded, "session is full")
	}
	if e.HasActiveRegistration {
		return EnrollmentOutcome{}, dErrors.New(dErrors.CodeDuplicateEnrollment, "already registered for this formation")
	}
	if in := e.Interest; in != nil && in.Status == models.InterestPending {
		// The interest already holds the slot.
		return EnrollmentOutcome{}, invalidTransition("interest for this formation is awaiting approval")
	}
	if in := e.Interest; in != nil && in.Status == models.InterestApproved {
		if e.Priority != "" && e.Priority != in.Priority {
			return EnrollmentOutcome{}, dErrors.New(dErrors.CodeInvalidInput, "priority differs from the approved interest")
		}
		return EnrollmentOutcome{
			Status:          models.RegistrationValidated,
			Priority:        in.Priority,
			QuotaReserved:   in.Priority.IsQuotaBound(),
			ConvertInterest: true,
		}, nil
	}
	if !e.Priority.IsValid() {
		return EnrollmentOutcome{}, dErrors.New(dErrors.CodeInvalidInput, "invalid priority")
	}
	return EnrollmentOutcome{Status: models.RegistrationPending, Priority: e.Priority}, nil
}
