package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func fixedClock() time.Time {
	return time.Date(2025, 4, 16, 9, 30, 0, 0, time.UTC)
}

func TestStore_InsertAppliesActivityDefaults(t *testing.T) {
	s := NewStore(WithIDGenerator(sequentialIDs()), WithClock(fixedClock))

	r := s.Insert(Draft{Title: "Inspection"})

	assert.Equal(t, "id-1", r.ID)
	assert.Equal(t, KindActivity, r.Kind)
	assert.Equal(t, CategoryTask, r.Category)
	assert.Equal(t, PriorityMedium, r.Priority)
	assert.Equal(t, StatusPending, r.Status)
	assert.Equal(t, "2025-04-16", r.Date)
	assert.Equal(t, DefaultActivityBody, r.Body)
	assert.Equal(t, []string{DefaultActivityTag}, r.Tags)
}

func TestStore_InsertKeepsOtherKindsAsGiven(t *testing.T) {
	s := NewStore(WithIDGenerator(sequentialIDs()))

	r := s.Insert(Draft{Kind: KindFAQ, Title: "Q", Body: "A", Category: CategoryCompte})

	assert.Empty(t, r.Status)
	assert.Empty(t, r.Tags)
	assert.Equal(t, CategoryCompte, r.Category)
}

func TestStore_InsertIsMostRecentFirst(t *testing.T) {
	s := NewStore(WithIDGenerator(sequentialIDs()))

	s.Insert(Draft{Title: "first"})
	s.Insert(Draft{Title: "second"})

	records := s.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "second", records[0].Title)
	assert.Equal(t, "first", records[1].Title)
}

func TestStore_InsertGeneratesUniqueIDs(t *testing.T) {
	s := NewStore()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		r := s.Insert(Draft{Title: "x"})
		require.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
}

func TestStore_UpdateStatusTouchesOnlyTarget(t *testing.T) {
	s := NewStore(WithIDGenerator(sequentialIDs()))
	a := s.Insert(Draft{Title: "a"})
	b := s.Insert(Draft{Title: "b", Status: StatusInProgress})

	assert.True(t, s.UpdateStatus(a.ID, StatusCompleted))

	gotA, _ := s.Get(a.ID)
	gotB, _ := s.Get(b.ID)
	assert.Equal(t, StatusCompleted, gotA.Status)
	assert.Equal(t, StatusInProgress, gotB.Status)

	assert.False(t, s.UpdateStatus("missing", StatusCompleted))
	assert.Equal(t, 2, s.Len())
}

func TestStore_DeleteMissingIsNoOp(t *testing.T) {
	s := NewStore(WithIDGenerator(sequentialIDs()))
	a := s.Insert(Draft{Title: "a"})

	assert.False(t, s.Delete("missing"))
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.Delete(a.ID))
	assert.Equal(t, 0, s.Len())
	_, ok := s.Get(a.ID)
	assert.False(t, ok)
}

func TestStore_NoAliasing(t *testing.T) {
	s := NewStore(WithIDGenerator(sequentialIDs()))
	tags := []string{"maïs"}
	r := s.Insert(Draft{Title: "a", Tags: tags})

	tags[0] = "mutated"
	r.Tags[0] = "mutated"
	listed := s.Records()
	listed[0].Tags[0] = "mutated"

	got, _ := s.Get(r.ID)
	assert.Equal(t, []string{"maïs"}, got.Tags)
}

func TestStore_AppendReplacesExisting(t *testing.T) {
	s := NewStore()
	s.Append(Record{ID: "1", Title: "a"}, Record{ID: "2", Title: "b"})
	s.Append(Record{ID: "1", Title: "a2"})

	records := s.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "a2", records[0].Title)
	assert.Equal(t, "b", records[1].Title)
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" In-Progress ")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, st)

	_, err = ParseStatus("done")
	assert.Error(t, err)
}

func TestCategory_ValidFor(t *testing.T) {
	assert.True(t, CategoryEvent.ValidFor(KindActivity))
	assert.False(t, CategoryEvent.ValidFor(KindFAQ))
	assert.True(t, CategorySupport.ValidFor(KindFAQ))
	assert.Len(t, Categories(KindResource), 4)
}
