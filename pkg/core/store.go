package core

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the ordered in-memory collection of records.
// Newest records come first. It never fails: unknown ids are ignored.
// All methods are safe for concurrent use and copy records on the way in
// and out, so callers never alias stored tags.
type Store struct {
	mu      sync.RWMutex
	records []Record
	newID   func() string
	now     func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDGenerator replaces the uuid based id generator.
func WithIDGenerator(fn func() string) StoreOption {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithClock sets the clock used to date new activities.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert stores the draft under a fresh id at the front of the collection.
func (s *Store) Insert(d Draft) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := d.record(s.newID(), s.now())
	s.records = slices.Insert(s.records, 0, r)
	return r.Clone()
}

// Append adds already identified records at the back, keeping their order.
// Records whose id is already present replace the stored copy in place.
func (s *Store) Append(records ...Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		if i := s.indexOf(r.ID); i >= 0 {
			s.records[i] = r.Clone()
			continue
		}
		s.records = append(s.records, r.Clone())
	}
}

// Load replaces the whole collection.
func (s *Store) Load(records []Record) {
	cloned := make([]Record, 0, len(records))
	for _, r := range records {
		cloned = append(cloned, r.Clone())
	}

	s.mu.Lock()
	s.records = cloned
	s.mu.Unlock()
}

// UpdateStatus sets the status of the record with the given id.
// It reports whether a record was found.
func (s *Store) UpdateStatus(id string, status Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.records[i].Status = status
	return true
}

// Delete removes the record with the given id.
// It reports whether a record was found.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.records = slices.Delete(s.records, i, i+1)
	return true
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Record{}, false
	}
	return s.records[i].Clone(), true
}

// Records returns a copy of the collection in display order.
func (s *Store) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.Clone())
	}
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.records, func(r Record) bool {
		return r.ID == id
	})
}
