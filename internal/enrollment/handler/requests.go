package handler

import (
	"strings"

	"trainhub/internal/enrollment/lifecycle"
	"trainhub/internal/enrollment/service"
	id "trainhub/pkg/domain"
	dErrors "trainhub/pkg/domain-errors"
)

// ExpressInterestRequest targets either a catalog formation or a custom title.
type ExpressInterestRequest struct {
	FormationID string `json:"formation_id,omitempty"`
	CustomTitle string `json:"custom_title,omitempty"`
	Priority    string `json:"priority"`
}

func (r *ExpressInterestRequest) Normalize() {
	r.FormationID = strings.TrimSpace(r.FormationID)
	r.CustomTitle = strings.TrimSpace(r.CustomTitle)
	r.Priority = strings.ToUpper(strings.TrimSpace(r.Priority))
}

func (r ExpressInterestRequest) ToCommand() (service.ExpressInterestRequest, error) {
	priority, err := id.ParsePriority(r.Priority)
	if err != nil {
		return service.ExpressInterestRequest{}, err
	}
	cmd := service.ExpressInterestRequest{CustomTitle: r.CustomTitle, Priority: priority}
	if r.FormationID != "" {
		formationID, err := id.ParseFormationID(r.FormationID)
		if err != nil {
			return service.ExpressInterestRequest{}, err
		}
		cmd.FormationID = &formationID
	}
	return cmd, nil
}

// InterestDecisionRequest carries an approve or reject taken as rh or coach.
type InterestDecisionRequest struct {
	Action string `json:"action"`
	As     string `json:"as"`
}

func (r InterestDecisionRequest) Parse() (lifecycle.Action, lifecycle.Acting, error) {
	action, err := lifecycle.ParseInterestDecision(r.Action)
	if err != nil {
		return "", "", err
	}
	acting, err := lifecycle.ParseReviewer(r.As)
	if err != nil {
		return "", "", err
	}
	return action, acting, nil
}

// CreateRegistrationRequest books a seat. UserID is honoured for RH only. Priority may
// be omitted when an approved interest converts.
type CreateRegistrationRequest struct {
	SessionID string `json:"session_id"`
	Priority  string `json:"priority"`
	UserID    string `json:"user_id,omitempty"`
}

func (r CreateRegistrationRequest) ToCommand() (service.CreateRegistrationRequest, error) {
	sessionID, err := id.ParseSessionID(strings.TrimSpace(r.SessionID))
	if err != nil {
		return service.CreateRegistrationRequest{}, err
	}
	cmd := service.CreateRegistrationRequest{SessionID: sessionID}
	if raw := strings.TrimSpace(r.Priority); raw != "" {
		priority, err := id.ParsePriority(strings.ToUpper(raw))
		if err != nil {
			return service.CreateRegistrationRequest{}, err
		}
		cmd.Priority = priority
	}
	if uid := strings.TrimSpace(r.UserID); uid != "" {
		userID, err := id.ParseUserID(uid)
		if err != nil {
			return service.CreateRegistrationRequest{}, err
		}
		cmd.UserID = &userID
	}
	return cmd, nil
}

type RegistrationDecisionRequest struct {
	Action string `json:"action"`
}

// SettingRequest toggles coach-validation-only. Enabled is a pointer so a missing field is rejected.
type SettingRequest struct {
	Enabled *bool `json:"enabled"`
}

func (r SettingRequest) Validate() error {
	if r.Enabled == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "enabled is required")
	}
	return nil
}

type SettingResponse struct {
	CoachValidationOnly bool `json:"coach_validation_only"`
}

type LedgerResponse struct {
	UserID string `json:"user_id"`
	P1Used int    `json:"p1_used"`
	P2Used int    `json:"p2_used"`
}
