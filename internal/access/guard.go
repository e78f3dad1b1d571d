// Package access decides whether a session may enter a route.
//
// Decisions are pure functions of (requirement, session snapshot) and are made
// again on every navigation attempt; nothing is cached between requests.
package access

import (
	"hire-portal/internal/domain/role"
)

// ForbiddenPath is where denied navigations are sent.
const ForbiddenPath = "/forbidden"

type Session struct {
	Authenticated bool
	UserID        string
	Username      string
	Email         string
	Roles         role.Set
	Token         string
}

func Anonymous() Session {
	return Session{Roles: role.NewSet()}
}

func (s Session) HasRole(r role.Role) bool {
	return s.Authenticated && s.Roles.Has(r)
}

// Privileged reports whether the viewer may see unpublished job offers.
func (s Session) Privileged() bool {
	return s.Authenticated && s.Roles.HasAny(role.Recruiter, role.Admin)
}

// Requirement is a route's role declaration. A route may declare a single
// required role, a set of allowed roles, both, or neither.
type Requirement struct {
	RequiredRole role.Role
	AllowedRoles role.Set
}

func Require(r role.Role) Requirement {
	return Requirement{RequiredRole: r}
}

func AllowAny(roles ...role.Role) Requirement {
	return Requirement{AllowedRoles: role.NewSet(roles...)}
}

func (r Requirement) Declared() bool {
	return r.RequiredRole != "" || len(r.AllowedRoles) > 0
}

type Decision struct {
	Allowed  bool
	Redirect string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny() Decision {
	return Decision{Allowed: false, Redirect: ForbiddenPath}
}

// Decide allows iff the session is authenticated and either holds the required
// role or shares at least one role with the allowed set. Undeclared routes are
// denied.
func Decide(req Requirement, s Session) Decision {
	if !req.Declared() {
		return deny()
	}
	if !s.Authenticated {
		return deny()
	}
	if req.RequiredRole != "" && s.Roles.Has(req.RequiredRole) {
		return allow()
	}
	if s.Roles.Intersects(req.AllowedRoles) {
		return allow()
	}
	return deny()
}
