package role

import (
	"sort"
	"strings"
)

type Role string

const (
	Admin     Role = "ADMIN"
	Recruiter Role = "RECRUITER"
	Candidate Role = "CANDIDATE"
)

// precedence is the display order used to pick a primary role.
var precedence = []Role{Admin, Recruiter, Candidate}

// Parse normalises a raw role string. Unknown names are kept upper-cased so
// that identity-provider roles outside the closed set still compare correctly.
func Parse(raw string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if r == "" {
		return "", false
	}
	return r, true
}

func (r Role) Known() bool {
	switch r {
	case Admin, Recruiter, Candidate:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

type Set map[Role]struct{}

func NewSet(roles ...Role) Set {
	s := make(Set, len(roles))
	for _, r := range roles {
		if r == "" {
			continue
		}
		s[r] = struct{}{}
	}
	return s
}

// ParseSet normalises every entry and drops blanks.
func ParseSet(raw []string) Set {
	s := make(Set, len(raw))
	for _, v := range raw {
		r, ok := Parse(v)
		if !ok {
			continue
		}
		s[r] = struct{}{}
	}
	return s
}

func (s Set) Has(r Role) bool {
	if s == nil {
		return false
	}
	_, ok := s[r]
	return ok
}

func (s Set) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

func (s Set) Intersects(other Set) bool {
	if len(s) == 0 || len(other) == 0 {
		return false
	}
	for r := range other {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// Slice returns the roles sorted by name.
func (s Set) Slice() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out
}

// Primary picks the display role: ADMIN > RECRUITER > CANDIDATE, otherwise the
// first role in the given order. Empty input yields "".
func Primary(roles []string) Role {
	set := ParseSet(roles)
	for _, r := range precedence {
		if set.Has(r) {
			return r
		}
	}
	for _, raw := range roles {
		if r, ok := Parse(raw); ok {
			return r
		}
	}
	return ""
}
