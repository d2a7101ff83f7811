package domain

// Role is a platform role carried by a user account.
type Role string

const (
	RoleConsultant       Role = "consultant"
	RoleRH               Role = "rh"
	RoleCoach            Role = "coach"
	RoleFormateur        Role = "formateur"
	RoleFormateurExterne Role = "formateur_externe"
	RoleManager          Role = "manager"
)

var validRoles = map[Role]bool{
	RoleConsultant:       true,
	RoleRH:               true,
	RoleCoach:            true,
	RoleFormateur:        true,
	RoleFormateurExterne: true,
	RoleManager:          true,
}

func (r Role) IsValid() bool {
	return validRoles[r]
}

// ParseRoles keeps the known roles and drops anything else.
func ParseRoles(values []string) []Role {
	roles := make([]Role, 0, len(values))
	for _, v := range values {
		if r := Role(v); r.IsValid() {
			roles = append(roles, r)
		}
	}
	return roles
}

// HasRole reports whether role appears in roles.
func HasRole(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
