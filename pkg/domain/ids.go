package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "trainhub/pkg/domain-errors"
)

// Typed identifiers keep users, sessions and records from being mixed up at
// compile time. All of them are UUIDs underneath.
type (
	UserID         uuid.UUID
	FormationID    uuid.UUID
	SessionID      uuid.UUID
	InterestID     uuid.UUID
	RegistrationID uuid.UUID
)

const maxIDLength = 64

// parseUUID enforces "IDs must be valid, non-empty, non-nil UUIDs".
func parseUUID(s, label string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	if len(s) > maxIDLength {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user ID")
	return UserID(u), err
}

func ParseFormationID(s string) (FormationID, error) {
	u, err := parseUUID(s, "formation ID")
	return FormationID(u), err
}

func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID(s, "session ID")
	return SessionID(u), err
}

func ParseInterestID(s string) (InterestID, error) {
	u, err := parseUUID(s, "interest ID")
	return InterestID(u), err
}

func ParseRegistrationID(s string) (RegistrationID, error) {
	u, err := parseUUID(s, "registration ID")
	return RegistrationID(u), err
}

func (id UserID) String() string { return uuid.UUID(id).String() }
func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id FormationID) String() string { return uuid.UUID(id).String() }
func (id FormationID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id SessionID) String() string { return uuid.UUID(id).String() }
func (id SessionID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id InterestID) String() string { return uuid.UUID(id).String() }
func (id InterestID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id RegistrationID) String() string { return uuid.UUID(id).String() }
func (id RegistrationID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// Text marshaling keeps JSON and log output in canonical UUID form.

func (id UserID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *UserID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id FormationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *FormationID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id SessionID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *SessionID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id InterestID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *InterestID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id RegistrationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *RegistrationID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
