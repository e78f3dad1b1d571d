package adminuser

import (
	"strings"

	"hire-portal/internal/domain/role"
)

// NoRole is the label shown when a user has no roles at all.
const NoRole = "—"

type Row struct {
	ID string `json:"id"`

	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`

	PhoneNumber string `json:"phoneNumber,omitempty"`

	Enabled          *bool `json:"enabled,omitempty"`
	CreatedTimestamp int64 `json:"createdTimestamp,omitempty"`

	Attributes map[string][]string `json:"attributes,omitempty"`

	Roles []string `json:"roles,omitempty"`
	Role  string   `json:"role,omitempty"`
}

// IsEnabled treats an absent flag as enabled.
func (r Row) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

func (r Row) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName))
}

// Normalize upper-cases roles, derives the primary role label and lifts the
// phone number out of the attribute bag.
func (r Row) Normalize() Row {
	out := r
	if out.Attributes == nil {
		out.Attributes = map[string][]string{}
	}

	for _, key := range []string{"phoneNumber", "phone", "mobile"} {
		if vs := out.Attributes[key]; len(vs) > 0 && vs[0] != "" {
			out.PhoneNumber = vs[0]
			break
		}
	}

	roles := make([]string, 0, len(r.Roles))
	for _, raw := range r.Roles {
		if v, ok := role.Parse(raw); ok {
			roles = append(roles, string(v))
		}
	}
	out.Roles = roles

	out.Role = string(role.Primary(roles))
	if out.Role == "" {
		out.Role = NoRole
	}
	return out
}

type RolesUpdate struct {
	Roles  []string `json:"roles"`
	Reason string   `json:"reason,omitempty"`
}
