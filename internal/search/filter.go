package search

import (
	"sort"
	"strings"
)

// Predicate decides whether a single record matches one criterion.
type Predicate[T any] func(T) bool

// Filter keeps the records that satisfy every predicate, in their original
// order. The input slice is never modified.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if matchesAll(it, preds) {
			out = append(out, it)
		}
	}
	return out
}

func matchesAll[T any](it T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p == nil {
			continue
		}
		if !p(it) {
			return false
		}
	}
	return true
}

// And composes predicates into one.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(it T) bool {
		return matchesAll(it, preds)
	}
}

// MatchText reports whether query occurs, case-insensitively, in the
// space-joined fields. A blank query matches everything.
func MatchText(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	haystack := strings.ToLower(strings.Join(fields, " "))
	return strings.Contains(haystack, q)
}

// Unset reports whether a categorical filter value means "no constraint".
func Unset(filter string) bool {
	f := strings.TrimSpace(filter)
	return f == "" || strings.EqualFold(f, "ALL")
}

// MatchCategory is an exact, case-sensitive comparison; unset filters match.
func MatchCategory(filter, value string) bool {
	if Unset(filter) {
		return true
	}
	return strings.TrimSpace(filter) == value
}

// MatchCategoryFold compares upper-cased values.
func MatchCategoryFold(filter, value string) bool {
	if Unset(filter) {
		return true
	}
	return strings.ToUpper(strings.TrimSpace(filter)) == strings.ToUpper(strings.TrimSpace(value))
}

// UniqueNonEmpty returns the distinct trimmed non-empty values, sorted.
func UniqueNonEmpty(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
