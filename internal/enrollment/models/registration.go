package models

import (
	"time"

	id "trainhub/pkg/domain"
)

// RegistrationStatus is the lifecycle state of a registration.
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationValidated RegistrationStatus = "validated"
	RegistrationCancelled RegistrationStatus = "cancelled"
	RegistrationCompleted RegistrationStatus = "completed"
)

func (s RegistrationStatus) IsValid() bool {
	switch s {
	case RegistrationPending, RegistrationValidated, RegistrationCancelled, RegistrationCompleted:
		return true
	}
	return false
}

// IsActive reports whether the registration occupies a seat.
func (s RegistrationStatus) IsActive() bool {
	return s == RegistrationPending || s == RegistrationValidated
}

func (s RegistrationStatus) IsTerminal() bool {
	return s == RegistrationCancelled || s == RegistrationCompleted
}

func (s RegistrationStatus) String() string { return string(s) }

// Registration is a booked seat in a session.
type Registration struct {
	ID            id.RegistrationID  `json:"id"`
	UserID        id.UserID          `json:"user_id"`
	SessionID     id.SessionID       `json:"session_id"`
	FormationID   id.FormationID     `json:"formation_id"`
	Priority      id.Priority        `json:"priority"`
	Status        RegistrationStatus `json:"status"`
	RegisteredAt  time.Time          `json:"registered_at"`
	InterestID    *id.InterestID     `json:"interest_id,omitempty"`
	QuotaReserved bool               `json:"quota_reserved"`
	DecidedAt     *time.Time         `json:"decided_at,omitempty"`
	DecidedBy     *id.UserID         `json:"decided_by,omitempty"`
}

// OwnsSlot reports whether the registration holds a P1/P2 ledger slot.
// Completed registrations keep their slot for the rest of the year.
func (r *Registration) OwnsSlot() bool {
	return r.QuotaReserved && r.Priority.IsQuotaBound() && r.Status != RegistrationCancelled
}
