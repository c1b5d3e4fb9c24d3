// Package query computes the visible subset of records for the activity
// tracker and the help center, and derives the tags offered in filter menus.
//
// Everything here is pure: inputs are never mutated and identical inputs
// give identical, order preserving outputs.
package query

import (
	"slices"
	"strings"

	"github.com/aretw0/myagri/pkg/core"
)

// All disables the category or status restriction.
const All = "all"

// Field extracts a searchable text field from a record.
type Field func(core.Record) string

// Searchable fields.
var (
	Title Field = func(r core.Record) string { return r.Title }
	Body  Field = func(r core.Record) string { return r.Body }
)

// DefaultFields are matched when Filter.Fields is empty.
var DefaultFields = []Field{Title, Body}

// Filter is the filter state owned by a screen.
type Filter struct {
	// Query is matched case-insensitively as a substring, untrimmed.
	// A blank query matches everything.
	Query string
	// Tags uses OR semantics: one shared tag is enough.
	Tags []string
	// Category is compared exactly; empty or All matches everything.
	Category core.Category
	// Fields overrides DefaultFields.
	Fields []Field
}

// Search returns the records matching every predicate of f,
// in their original relative order.
func Search(records []core.Record, f Filter) []core.Record {
	needle := ""
	if strings.TrimSpace(f.Query) != "" {
		needle = strings.ToLower(f.Query)
	}
	fields := f.Fields
	if len(fields) == 0 {
		fields = DefaultFields
	}

	out := make([]core.Record, 0, len(records))
	for _, r := range records {
		if matchesQuery(r, needle, fields) && matchesTags(r, f.Tags) && matchesCategory(r, f.Category) {
			out = append(out, r.Clone())
		}
	}
	return out
}

// ByStatus keeps the records with the given status. All passes everything.
// It backs the status tabs, which the caller applies on top of Search.
func ByStatus(records []core.Record, status core.Status) []core.Record {
	out := make([]core.Record, 0, len(records))
	for _, r := range records {
		if status == "" || status == All || r.Status == status {
			out = append(out, r.Clone())
		}
	}
	return out
}

func matchesQuery(r core.Record, needle string, fields []Field) bool {
	if needle == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field(r)), needle) {
			return true
		}
	}
	return false
}

func matchesTags(r core.Record, active []string) bool {
	if len(active) == 0 {
		return true
	}
	return slices.ContainsFunc(active, r.HasTag)
}

func matchesCategory(r core.Record, c core.Category) bool {
	return c == "" || c == All || r.Category == c
}
