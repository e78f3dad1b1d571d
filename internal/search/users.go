package search

import (
	"strings"

	"hire-portal/internal/domain/adminuser"
)

type EnabledFilter string

const (
	EnabledAll      EnabledFilter = "ALL"
	EnabledOnly     EnabledFilter = "ENABLED"
	EnabledDisabled EnabledFilter = "DISABLED"
)

// ParseEnabledFilter falls back to EnabledAll for unknown input.
func ParseEnabledFilter(raw string) EnabledFilter {
	switch EnabledFilter(strings.ToUpper(strings.TrimSpace(raw))) {
	case EnabledOnly:
		return EnabledOnly
	case EnabledDisabled:
		return EnabledDisabled
	default:
		return EnabledAll
	}
}

type UserCriteria struct {
	Enabled EnabledFilter
	Role    string
}

func (c UserCriteria) Predicates() []Predicate[adminuser.Row] {
	return []Predicate[adminuser.Row]{
		UserEnabled(c.Enabled),
		UserRole(c.Role),
	}
}

func UserEnabled(f EnabledFilter) Predicate[adminuser.Row] {
	return func(u adminuser.Row) bool {
		switch f {
		case EnabledOnly:
			return u.IsEnabled()
		case EnabledDisabled:
			return !u.IsEnabled()
		default:
			return true
		}
	}
}

// UserRole matches the primary role label or any granted role, upper-cased.
func UserRole(filter string) Predicate[adminuser.Row] {
	return func(u adminuser.Row) bool {
		if Unset(filter) {
			return true
		}
		if MatchCategoryFold(filter, u.Role) {
			return true
		}
		for _, r := range u.Roles {
			if MatchCategoryFold(filter, r) {
				return true
			}
		}
		return false
	}
}

// RoleOptions collects the role labels present in users.
func RoleOptions(users []adminuser.Row) []string {
	vals := make([]string, 0, len(users))
	for _, u := range users {
		if r := strings.TrimSpace(u.Role); r != "" && r != adminuser.NoRole {
			vals = append(vals, strings.ToUpper(r))
		}
		for _, r := range u.Roles {
			vals = append(vals, strings.ToUpper(r))
		}
	}
	return UniqueNonEmpty(vals)
}
