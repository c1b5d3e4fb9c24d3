package query

import (
	"slices"

	"github.com/aretw0/myagri/pkg/core"
)

// AllTags returns the sorted, deduplicated union of every record's tags.
// It is recomputed on each call.
func AllTags(records []core.Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		for _, tag := range r.Tags {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Toggle returns a new active set with tag added if absent, removed if present.
func Toggle(active []string, tag string) []string {
	if i := slices.Index(active, tag); i >= 0 {
		out := make([]string, 0, len(active)-1)
		out = append(out, active[:i]...)
		return append(out, active[i+1:]...)
	}
	out := make([]string, 0, len(active)+1)
	out = append(out, active...)
	return append(out, tag)
}
