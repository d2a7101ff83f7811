// Package lifecycle holds the interest and registration state machines.
//
// Every function here is pure: it receives the current record plus the
// decision context and returns the next state together with the ledger
// delta to apply. Persistence applies the outcome inside a transaction.
package lifecycle

import (
	"strings"

	dErrors "trainhub/pkg/domain-errors"
)

// Action names a transition request.
type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionWithdraw Action = "withdraw"
	ActionConvert  Action = "convert"
	ActionValidate Action = "validate"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

// ParseInterestDecision accepts the actions a reviewer can take on an interest.
func ParseInterestDecision(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionApprove, ActionReject:
		return a, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "action must be approve or reject")
}

// ParseRegistrationDecision accepts the actions allowed on a registration.
func ParseRegistrationDecision(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionValidate, ActionCancel, ActionComplete:
		return a, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "action must be validate, cancel or complete")
}

// Acting is the capacity in which a transition is requested.
type Acting string

const (
	ActingRH    Acting = "rh"
	ActingCoach Acting = "coach"
	ActingOwner Acting = "owner"
	// ActingSystem covers cascades (archival, conversion) triggered by another operation.
	ActingSystem Acting = "system"
)

// ParseReviewer accepts the capacities allowed to decide an interest.
func ParseReviewer(s string) (Acting, error) {
	switch a := Acting(strings.ToLower(strings.TrimSpace(s))); a {
	case ActingRH, ActingCoach:
		return a, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "as must be rh or coach")
}

func invalidTransition(msg string) error {
	return dErrors.New(dErrors.CodeInvalidTransition, msg)
}

func invalidAction(a Action) error {
	return dErrors.New(dErrors.CodeInvalidInput, "unsupported action "+string(a))
}
