package query_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/myagri/pkg/core"
	"github.com/aretw0/myagri/pkg/query"
)

func activities() []core.Record {
	return []core.Record{
		{
			ID: "A1", Kind: core.KindActivity, Category: core.CategoryTask,
			Title:  "Inspection des cultures de maïs",
			Body:   "Vérifier l'état de santé des plants",
			Tags:   []string{"maïs", "inspection"},
			Status: core.StatusPending,
		},
		{
			ID: "A2", Kind: core.KindActivity, Category: core.CategoryTask,
			Title:  "Commander des semences",
			Body:   "Semences de blé et d'orge",
			Tags:   []string{"commande", "blé"},
			Status: core.StatusCompleted,
		},
		{
			ID: "A3", Kind: core.KindActivity, Category: core.CategoryNote,
			Title:  "Taches sur les tomates",
			Body:   "Observation dans la serre 2",
			Tags:   []string{"tomates", "maladie"},
			Status: core.StatusPending,
		},
	}
}

func ids(records []core.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestSearch_EmptyFilterReturnsEverythingInOrder(t *testing.T) {
	records := activities()

	got := query.Search(records, query.Filter{Category: query.All})

	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("Search with empty filter mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_QueryIsCaseInsensitiveSubstring(t *testing.T) {
	records := activities()

	got := query.Search(records, query.Filter{Query: "SEMENCES"})
	assert.Equal(t, []string{"A2"}, ids(got))

	// Matches on the body too.
	got = query.Search(records, query.Filter{Query: "serre"})
	assert.Equal(t, []string{"A3"}, ids(got))

	for _, r := range query.Search(records, query.Filter{Query: "de"}) {
		text := strings.ToLower(r.Title + "\n" + r.Body)
		assert.Contains(t, text, "de")
	}
}

func TestSearch_WhitespaceQueryMatchesAll(t *testing.T) {
	got := query.Search(activities(), query.Filter{Query: "   "})
	assert.Len(t, got, 3)
}

func TestSearch_QueryIsNotTrimmed(t *testing.T) {
	records := []core.Record{{ID: "A1", Title: "maïs"}, {ID: "A2", Title: "maïs doux"}}

	got := query.Search(records, query.Filter{Query: "maïs "})
	assert.Equal(t, []string{"A2"}, ids(got))
	for _, r := range got {
		assert.Contains(t, strings.ToLower(r.Title+"\n"+r.Body), "maïs ")
	}
}

func TestSearch_CustomFields(t *testing.T) {
	// "serre" only appears in a body.
	got := query.Search(activities(), query.Filter{Query: "serre", Fields: []query.Field{query.Title}})
	assert.Empty(t, got)
}

func TestSearch_TagsUseOrSemantics(t *testing.T) {
	got := query.Search(activities(), query.Filter{Tags: []string{"maïs", "unknown"}})
	assert.Equal(t, []string{"A1"}, ids(got))

	got = query.Search(activities(), query.Filter{Tags: []string{"maïs", "tomates"}})
	assert.Equal(t, []string{"A1", "A3"}, ids(got))
}

func TestSearch_CategoryIsExact(t *testing.T) {
	got := query.Search(activities(), query.Filter{Category: core.CategoryNote})
	assert.Equal(t, []string{"A3"}, ids(got))

	got = query.Search(activities(), query.Filter{Category: core.CategoryEvent})
	assert.Empty(t, got)
}

func TestSearch_PredicatesCombineWithAnd(t *testing.T) {
	got := query.Search(activities(), query.Filter{
		Query:    "tomates",
		Tags:     []string{"maïs"},
		Category: query.All,
	})
	assert.Empty(t, got)
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	records := activities()
	before := activities()

	got := query.Search(records, query.Filter{Tags: []string{"maïs"}})
	require.Len(t, got, 1)
	got[0].Tags[0] = "changed"
	got[0].Title = "changed"

	if diff := cmp.Diff(before, records); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestSearch_StatusScenario(t *testing.T) {
	s := core.NewStore()
	s.Load(activities()[:2])

	got := query.Search(s.Records(), query.Filter{Tags: []string{"maïs"}, Category: query.All})
	assert.Equal(t, []string{"A1"}, ids(got))

	s.UpdateStatus("A1", core.StatusCompleted)

	visible := query.Search(s.Records(), query.Filter{Category: core.CategoryTask})
	done := query.ByStatus(visible, core.StatusCompleted)
	assert.ElementsMatch(t, []string{"A1", "A2"}, ids(done))
}

func TestByStatus(t *testing.T) {
	records := activities()

	assert.Equal(t, []string{"A1", "A3"}, ids(query.ByStatus(records, core.StatusPending)))
	assert.Len(t, query.ByStatus(records, query.All), 3)
	assert.Empty(t, query.ByStatus(records, core.StatusInProgress))
}
