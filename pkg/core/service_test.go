package core_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/aretw0/myagri/pkg/core"
)

// MockRepository implements core.Repository in memory.
// It deliberately does NOT implement core.Watchable to test fallback/errors.
type MockRepository struct {
	records map[string]core.Record
	failOn  string
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		records: make(map[string]core.Record),
	}
}

func (m *MockRepository) Save(ctx context.Context, r core.Record) error {
	if m.failOn == "save" {
		return errors.New("disk full")
	}
	m.records[r.ID] = r
	return nil
}

func (m *MockRepository) Get(ctx context.Context, id string) (core.Record, error) {
	r, ok := m.records[id]
	if !ok {
		return core.Record{}, core.ErrNotFound
	}
	return r, nil
}

func (m *MockRepository) List(ctx context.Context) ([]core.Record, error) {
	var records []core.Record
	for _, r := range m.records {
		records = append(records, r)
	}
	// Sort for deterministic tests
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
	return records, nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.records[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *MockRepository) Initialize(ctx context.Context) error { return nil }

func TestService_CRUD(t *testing.T) {
	repo := NewMockRepository()
	service := core.NewService(repo)
	ctx := context.TODO()

	// 1. Add
	rec, err := service.Add(ctx, core.Draft{Title: "Traiter la parcelle 3"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, ok := repo.records[rec.ID]; !ok {
		t.Fatalf("record %s was not persisted", rec.ID)
	}

	// 2. Status
	if err := service.SetStatus(ctx, rec.ID, core.StatusCompleted); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	got, ok := service.Get(rec.ID)
	if !ok || got.Status != core.StatusCompleted {
		t.Errorf("expected completed record, got %+v", got)
	}
	if repo.records[rec.ID].Status != core.StatusCompleted {
		t.Errorf("repository kept stale status %q", repo.records[rec.ID].Status)
	}

	// 3. Remove
	if err := service.Remove(ctx, rec.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok := service.Get(rec.ID); ok {
		t.Error("expected record to be gone from the store")
	}
	if len(repo.records) != 0 {
		t.Errorf("expected empty repository, got %d records", len(repo.records))
	}
}

func TestService_Add_RequiresTitle(t *testing.T) {
	service := core.NewService(NewMockRepository())

	_, err := service.Add(context.TODO(), core.Draft{Title: "   "})
	if !errors.Is(err, core.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestService_Add_RollsBackOnSaveFailure(t *testing.T) {
	repo := NewMockRepository()
	repo.failOn = "save"
	service := core.NewService(repo)

	if _, err := service.Add(context.TODO(), core.Draft{Title: "Semis"}); err == nil {
		t.Fatal("expected save error")
	}
	if n := len(service.Records()); n != 0 {
		t.Errorf("store should be empty after failed save, got %d", n)
	}
}

func TestService_UnknownIDsAreNoOps(t *testing.T) {
	service := core.NewService(NewMockRepository())
	ctx := context.TODO()

	if err := service.SetStatus(ctx, "missing", core.StatusCompleted); err != nil {
		t.Errorf("SetStatus on missing id: %v", err)
	}
	if err := service.Remove(ctx, "missing"); err != nil {
		t.Errorf("Remove on missing id: %v", err)
	}
	select {
	case e := <-service.Events():
		t.Errorf("no event expected, got %v", e)
	default:
	}
}

func TestService_LoadOrdersMostRecentFirst(t *testing.T) {
	repo := NewMockRepository()
	repo.records["a"] = core.Record{ID: "a", Title: "old", Date: "2025-04-10"}
	repo.records["b"] = core.Record{ID: "b", Title: "new", Date: "2025-04-15"}
	repo.records["c"] = core.Record{ID: "c", Title: "mid", Date: "2025-04-12"}

	service := core.NewService(repo)
	if err := service.Load(context.TODO()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var ids []string
	for _, r := range service.Records() {
		ids = append(ids, r.ID)
	}
	want := []string{"b", "c", "a"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, ids)
		}
	}
}

func TestService_Events(t *testing.T) {
	service := core.NewService(NewMockRepository(), core.WithEventBuffer(1))
	ctx := context.TODO()

	rec, err := service.Add(ctx, core.Draft{Title: "Irrigation"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	// Buffer is full now: the second event is dropped instead of blocking.
	if err := service.SetStatus(ctx, rec.ID, core.StatusInProgress); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	e := <-service.Events()
	if e.Type != core.EventCreate || e.ID != rec.ID {
		t.Errorf("unexpected event %v", e)
	}

	_ = service.Close()
	if _, ok := <-service.Events(); ok {
		t.Error("expected closed event channel")
	}
	// Emitting after Close must not panic.
	if err := service.Remove(ctx, rec.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
}

func TestService_Watch_Unsupported(t *testing.T) {
	service := core.NewService(NewMockRepository())

	_, err := service.Watch(context.TODO(), "*")
	if err == nil {
		t.Fatal("expected error for non-watchable repo")
	}
	if err.Error() != "repository does not support watching" {
		t.Errorf("unexpected error msg: %v", err)
	}
}
