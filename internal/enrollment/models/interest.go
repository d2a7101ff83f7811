package models

import (
	"strings"
	"time"

	id "trainhub/pkg/domain"
	dErrors "trainhub/pkg/domain-errors"
)

const maxCustomTitleLength = 200

// InterestStatus is the lifecycle state of an interest.
type InterestStatus string

const (
	InterestPending   InterestStatus = "pending"
	InterestApproved  InterestStatus = "approved"
	InterestConverted InterestStatus = "converted"
	InterestRejected  InterestStatus = "rejected"
	InterestWithdrawn InterestStatus = "withdrawn"
)

func (s InterestStatus) IsValid() bool {
	switch s {
	case InterestPending, InterestApproved, InterestConverted, InterestRejected, InterestWithdrawn:
		return true
	}
	return false
}

// IsActive reports whether the interest still holds its commitment.
func (s InterestStatus) IsActive() bool {
	return s == InterestPending || s == InterestApproved
}

func (s InterestStatus) IsTerminal() bool {
	return s == InterestConverted || s == InterestRejected || s == InterestWithdrawn
}

func (s InterestStatus) String() string { return string(s) }

// CoachStatus tracks the coach gate on an interest.
type CoachStatus string

const (
	CoachPending  CoachStatus = "pending"
	CoachApproved CoachStatus = "approved"
)

func (s CoachStatus) String() string { return string(s) }

// Interest is a user's intent to attend a catalog formation or an off-catalog request.
type Interest struct {
	ID               id.InterestID   `json:"id"`
	UserID           id.UserID       `json:"user_id"`
	FormationID      *id.FormationID `json:"formation_id,omitempty"`
	CustomTitle      string          `json:"custom_title,omitempty"`
	Priority         id.Priority     `json:"priority"`
	Status           InterestStatus  `json:"status"`
	CoachStatus      *CoachStatus    `json:"coach_status,omitempty"`
	ExpressedAt      time.Time       `json:"expressed_at"`
	CoachValidatedAt *time.Time      `json:"coach_validated_at,omitempty"`
	DecidedAt        *time.Time      `json:"decided_at,omitempty"`
	DecidedBy        *id.UserID      `json:"decided_by,omitempty"`
}

// NewInterest builds a pending interest. The coach gate is recorded when gated is true.
func NewInterest(interestID id.InterestID, userID id.UserID, formationID *id.FormationID, customTitle string, priority id.Priority, gated bool, now time.Time) (*Interest, error) {
	customTitle = strings.TrimSpace(customTitle)
	if formationID == nil && customTitle == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "formation_id or custom_title is required")
	}
	if formationID != nil && customTitle != "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "formation_id and custom_title are mutually exclusive")
	}
	if formationID != nil && formationID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "formation_id cannot be nil")
	}
	if len(customTitle) > maxCustomTitleLength {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "custom_title is too long")
	}
	if !priority.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid priority")
	}
	in := &Interest{
		ID:          interestID,
		UserID:      userID,
		FormationID: formationID,
		CustomTitle: customTitle,
		Priority:    priority,
		Status:      InterestPending,
		ExpressedAt: now,
	}
	if gated {
		cs := CoachPending
		in.CoachStatus = &cs
	}
	return in, nil
}

// IsOffCatalog reports whether the interest targets a custom, non-catalog request.
func (i *Interest) IsOffCatalog() bool {
	return i.FormationID == nil
}

// IsGated reports whether the coach gate was active when the interest was created.
func (i *Interest) IsGated() bool {
	return i.CoachStatus != nil
}

// AwaitingCoach reports whether RH must wait for the coach.
func (i *Interest) AwaitingCoach() bool {
	return i.CoachStatus != nil && *i.CoachStatus == CoachPending
}

// Targets reports whether the interest is about the given catalog formation.
func (i *Interest) Targets(formationID id.FormationID) bool {
	return i.FormationID != nil && *i.FormationID == formationID
}
