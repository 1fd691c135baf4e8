package gate

import (
	"fmt"
	"strings"

	identitydomain "github.com/LangoJordan/annonceluzy/internal/identity/domain"
)

// RoleSet is an ordered set of roles a route accepts.
type RoleSet []identitydomain.Role

func Roles(roles ...identitydomain.Role) RoleSet {
	return RoleSet(roles)
}

func (s RoleSet) Contains(role identitydomain.Role) bool {
	for _, r := range s {
		if r == role {
			return true
		}
	}
	return false
}

// Label renders the set for denial messages, e.g. "Admin, Manager".
func (s RoleSet) Label() string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		name := string(r)
		if name != "" {
			parts = append(parts, strings.ToUpper(name[:1])+name[1:])
		}
	}
	return strings.Join(parts, ", ")
}

// RequireRole is a pure predicate: no I/O, no mutation. An absent principal
// passes through so the authentication layer stays the single place that
// answers "who are you".
func RequireRole(principal *identitydomain.User, allowed RoleSet) Decision {
	if principal == nil {
		return Allow()
	}
	if allowed.Contains(principal.Role) {
		return Allow()
	}
	return forbidden(fmt.Sprintf("Unauthorized. %s access required.", allowed.Label()))
}
