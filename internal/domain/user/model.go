package user

import "strings"

const RoleAdmin = "admin"

// Principal is the caller identity resolved from a session token.
type Principal struct {
	UserID      string
	Email       string
	DisplayName string
	Roles       []string
}

func (p Principal) HasRole(role string) bool {
	role = strings.TrimSpace(role)
	for _, r := range p.Roles {
		if strings.EqualFold(strings.TrimSpace(r), role) {
			return true
		}
	}
	return false
}

func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

// Name falls back from display name to email to user id.
func (p Principal) Name() string {
	if name := strings.TrimSpace(p.DisplayName); name != "" {
		return name
	}
	if email := strings.TrimSpace(p.Email); email != "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			return email[:at]
		}
		return email
	}
	return p.UserID
}
