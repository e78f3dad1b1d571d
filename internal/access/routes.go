package access

import "hire-portal/internal/domain/role"

const (
	RouteJobsManage         = "jobs.manage"
	RouteApplicationsReview = "applications.review"
	RouteApplicationsMine   = "applications.mine"
	RouteAdminUsers         = "admin.users"
	RouteProfile            = "profile"
)

// Table maps route names to their declarations.
type Table map[string]Requirement

// DefaultRoutes is the portal's route declaration table.
func DefaultRoutes() Table {
	return Table{
		RouteJobsManage:         AllowAny(role.Recruiter, role.Admin),
		RouteApplicationsReview: AllowAny(role.Recruiter, role.Admin),
		RouteApplicationsMine:   Require(role.Candidate),
		RouteAdminUsers:         Require(role.Admin),
		RouteProfile:            AllowAny(role.Candidate, role.Recruiter, role.Admin),
	}
}

// Lookup returns the declaration for name. Unknown routes get an empty
// declaration, which Decide denies.
func (t Table) Lookup(name string) Requirement {
	if t == nil {
		return Requirement{}
	}
	return t[name]
}

func (t Table) Decide(name string, s Session) Decision {
	return Decide(t.Lookup(name), s)
}
