package service

import (
	"context"

	"trainhub/internal/enrollment/models"
	id "trainhub/pkg/domain"
)

// Store is the persistence surface the lifecycle service works against.
// Lookups return sentinel.ErrNotFound when the row is missing.
//
// LockUser and LockSession serialise concurrent transitions: within RunInTx they
// must block other transactions touching the same user (ledger) or session
// (capacity) until commit. Callers lock the user before the session.
type Store interface {
	LockUser(ctx context.Context, userID id.UserID) (*models.User, error)
	GetUser(ctx context.Context, userID id.UserID) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	// DeleteUser removes the user together with all their interests and registrations.
	DeleteUser(ctx context.Context, userID id.UserID) error

	LockSession(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
	CountActiveRegistrations(ctx context.Context, sessionID id.SessionID) (int, error)

	CreateInterest(ctx context.Context, in *models.Interest) error
	UpdateInterest(ctx context.Context, in *models.Interest) error
	GetInterest(ctx context.Context, interestID id.InterestID) (*models.Interest, error)
	DeleteInterest(ctx context.Context, interestID id.InterestID) error
	// FindActiveInterest returns the pending or approved interest for (user, formation).
	FindActiveInterest(ctx context.Context, userID id.UserID, formationID id.FormationID) (*models.Interest, error)
	ListInterestsByUser(ctx context.Context, userID id.UserID) ([]*models.Interest, error)

	CreateRegistration(ctx context.Context, r *models.Registration) error
	UpdateRegistration(ctx context.Context, r *models.Registration) error
	GetRegistration(ctx context.Context, registrationID id.RegistrationID) (*models.Registration, error)
	// HasRegistrationFor reports whether a non-cancelled registration exists for (user, formation).
	HasRegistrationFor(ctx context.Context, userID id.UserID, formationID id.FormationID) (bool, error)
	ListRegistrationsByUser(ctx context.Context, userID id.UserID) ([]*models.Registration, error)
}

// StoreTx provides the transactional boundary for lifecycle mutations.
// Implementations wrap a database transaction or, in memory, a lock with rollback.
// fn receives the transaction-scoped context; audit writes made with it join the
// transaction.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

// Settings exposes the runtime coach-validation switch.
type Settings interface {
	CoachValidationOnly(ctx context.Context) (bool, error)
	SetCoachValidationOnly(ctx context.Context, enabled bool) error
}
