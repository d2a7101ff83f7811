// Package policy answers "may this actor do that" for enrollment operations.
// The lifecycle engine never looks at roles directly; it asks an Authorizer.
package policy

import (
	"trainhub/internal/enrollment/lifecycle"
	"trainhub/internal/enrollment/models"
	id "trainhub/pkg/domain"
	dErrors "trainhub/pkg/domain-errors"
)

// Actor is the authenticated caller.
type Actor struct {
	ID    id.UserID
	Roles []id.Role
}

// Authorizer is the capability check the enrollment service depends on.
type Authorizer interface {
	IsRH(actor Actor) bool
	IsCoachOf(actor Actor, owner *models.User) bool
	IsOwner(actor Actor, ownerID id.UserID) bool
}

// RoleAuthorizer derives capabilities from the actor's roles and the owner's
// assigned coach.
type RoleAuthorizer struct{}

func NewRoleAuthorizer() RoleAuthorizer { return RoleAuthorizer{} }

func (RoleAuthorizer) IsRH(actor Actor) bool {
	return id.HasRole(actor.Roles, id.RoleRH)
}

func (RoleAuthorizer) IsCoachOf(actor Actor, owner *models.User) bool {
	return owner != nil && owner.IsCoachedBy(actor.ID)
}

func (RoleAuthorizer) IsOwner(actor Actor, ownerID id.UserID) bool {
	return !actor.ID.IsNil() && actor.ID == ownerID
}

func forbidden(msg string) error {
	return dErrors.New(dErrors.CodeForbidden, msg)
}

// RequireRH fails unless the actor holds the RH role.
func RequireRH(a Authorizer, actor Actor) error {
	if !a.IsRH(actor) {
		return forbidden("RH role required")
	}
	return nil
}

// CanDecideInterest checks the acting capacity named by a reviewer.
func CanDecideInterest(a Authorizer, actor Actor, acting lifecycle.Acting, owner *models.User) error {
	switch acting {
	case lifecycle.ActingRH:
		if a.IsRH(actor) {
			return nil
		}
		return forbidden("RH role required")
	case lifecycle.ActingCoach:
		if a.IsCoachOf(actor, owner) {
			return nil
		}
		return forbidden("not the assigned coach of this user")
	}
	return forbidden("unsupported reviewer capacity")
}

// CanWithdrawInterest allows only the owner.
func CanWithdrawInterest(a Authorizer, actor Actor, in *models.Interest) error {
	if a.IsOwner(actor, in.UserID) {
		return nil
	}
	return forbidden("only the owner can withdraw an interest")
}

// CanViewInterest allows the owner, RH and the owner's coach.
func CanViewInterest(a Authorizer, actor Actor, in *models.Interest, owner *models.User) error {
	if a.IsOwner(actor, in.UserID) || a.IsRH(actor) || a.IsCoachOf(actor, owner) {
		return nil
	}
	return forbidden("not allowed to view this interest")
}

// CanViewUser allows the user themself and RH.
func CanViewUser(a Authorizer, actor Actor, userID id.UserID) error {
	if a.IsOwner(actor, userID) || a.IsRH(actor) {
		return nil
	}
	return forbidden("not allowed to view this user")
}

// CanEnroll allows self-enrollment, and RH enrolling anyone.
func CanEnroll(a Authorizer, actor Actor, userID id.UserID) error {
	return CanViewUser(a, actor, userID)
}

// CanDecideRegistration: validate and complete are RH only; cancel is owner or RH.
func CanDecideRegistration(a Authorizer, actor Actor, action lifecycle.Action, r *models.Registration) error {
	if a.IsRH(actor) {
		return nil
	}
	if action == lifecycle.ActionCancel && a.IsOwner(actor, r.UserID) {
		return nil
	}
	if action == lifecycle.ActionCancel {
		return forbidden("only the owner or RH can cancel a registration")
	}
	return forbidden("RH role required")
}
