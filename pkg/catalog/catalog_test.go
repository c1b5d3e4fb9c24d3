package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/myagri/pkg/catalog"
	"github.com/aretw0/myagri/pkg/core"
	"github.com/aretw0/myagri/pkg/query"
)

func TestCatalog_Shapes(t *testing.T) {
	cases := []struct {
		name    string
		records []core.Record
		kind    core.Kind
		count   int
	}{
		{"activities", catalog.Activities(), core.KindActivity, 5},
		{"faq", catalog.FAQ(), core.KindFAQ, 8},
		{"resources", catalog.Resources(), core.KindResource, 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Len(t, tc.records, tc.count)
			seen := map[string]bool{}
			for _, r := range tc.records {
				assert.Equal(t, tc.kind, r.Kind)
				assert.True(t, r.Category.ValidFor(tc.kind), "%s has category %q", r.ID, r.Category)
				assert.NotEmpty(t, r.Title)
				assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
				seen[r.ID] = true
			}
		})
	}
}

func TestCatalog_FreshCopies(t *testing.T) {
	a := catalog.Activities()
	a[0].Tags[0] = "mutated"
	a[0].Title = "mutated"

	b := catalog.Activities()
	assert.Equal(t, "maïs", b[0].Tags[0])
	assert.NotEqual(t, "mutated", b[0].Title)
}

func TestCatalog_HelpSearch(t *testing.T) {
	got := query.Search(catalog.FAQ(), query.Filter{Query: "profil", Category: query.All})
	if assert.Len(t, got, 1) {
		assert.Equal(t, "faq-3", got[0].ID)
	}

	got = query.Search(catalog.FAQ(), query.Filter{Category: core.CategoryAnalyse})
	assert.Len(t, got, 3)

	got = query.Search(catalog.Resources(), query.Filter{Query: "simulation"})
	if assert.Len(t, got, 1) {
		assert.Equal(t, "res-4", got[0].ID)
	}
}

func TestSearchHelp(t *testing.T) {
	faqs, resources := catalog.SearchHelp("", core.CategoryAnalyse)
	assert.Len(t, faqs, 3)
	for _, r := range faqs {
		assert.Equal(t, core.CategoryAnalyse, r.Category)
	}
	assert.Len(t, resources, len(catalog.Resources()), "category must not filter resources")

	faqs, resources = catalog.SearchHelp("simulation", core.CategoryCompte)
	for _, r := range faqs {
		assert.Equal(t, core.CategoryCompte, r.Category)
	}
	if assert.Len(t, resources, 1) {
		assert.Equal(t, "res-4", resources[0].ID)
	}
}

func TestCatalog_Tags(t *testing.T) {
	tags := query.AllTags(catalog.Activities())
	assert.Contains(t, tags, "maïs")
	assert.Len(t, tags, 16)
}
