package models

import (
	"time"

	id "trainhub/pkg/domain"
)

// User is the slice of an account the lifecycle engine reads and writes.
// Identity and profile data live elsewhere.
type User struct {
	ID         id.UserID   `json:"id"`
	Roles      []id.Role   `json:"roles"`
	CoachID    *id.UserID  `json:"coach_id,omitempty"`
	Ledger     QuotaLedger `json:"ledger"`
	Archived   bool        `json:"archived"`
	ArchivedAt *time.Time  `json:"archived_at,omitempty"`
}

// HasCoach reports whether the coach gate applies to this user's interests.
func (u *User) HasCoach() bool {
	return u.CoachID != nil && !u.CoachID.IsNil()
}

// IsCoachedBy reports whether coachID is this user's assigned coach.
func (u *User) IsCoachedBy(coachID id.UserID) bool {
	return u.HasCoach() && *u.CoachID == coachID
}
