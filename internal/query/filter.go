// Package query holds the search predicates and grouping projections shared by the console panels.
package query

import (
	"strings"

	"github.com/samber/lo"
)

// All is the category filter value that matches every record
const All = "all"

// Predicate reports whether a record stays in a filtered list
type Predicate[T any] func(T) bool

// MatchText reports whether any field contains query, ignoring case.
// An empty query matches everything.
func MatchText(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	needle := strings.ToLower(query)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// MatchCategory reports whether value passes a categorical filter. Empty and All match anything.
func MatchCategory(filter, value string) bool {
	return filter == "" || filter == All || filter == value
}

// Search matches query against the text fields of a record
func Search[T any](query string, fields func(T) []string) Predicate[T] {
	return func(item T) bool {
		return MatchText(query, fields(item)...)
	}
}

// Category matches filter against one categorical field of a record
func Category[T any](filter string, field func(T) string) Predicate[T] {
	return func(item T) bool {
		return MatchCategory(filter, field(item))
	}
}

// Apply keeps the items passing every predicate, in their original order
func Apply[T any](items []T, predicates ...Predicate[T]) []T {
	return lo.Filter(items, func(item T, _ int) bool {
		for _, match := range predicates {
			if !match(item) {
				return false
			}
		}
		return true
	})
}
