package core

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

// DefaultEventBuffer is the size of the change event channel.
const DefaultEventBuffer = 100

// Service handles the business logic for records. It keeps the in-memory
// Store in sync with a Repository and publishes an Event for every change.
type Service struct {
	mu              sync.RWMutex
	repo            Repository
	store           *Store
	logger          *slog.Logger
	events          chan Event
	eventBufferSize int
	closed          bool
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithStore makes the service operate on an existing store.
func WithStore(store *Store) ServiceOption {
	return func(s *Service) {
		s.store = store
	}
}

// WithServiceLogger sets the logger for the service.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithEventBuffer sets the size of the event channel. Zero means default.
func WithEventBuffer(size int) ServiceOption {
	return func(s *Service) {
		s.eventBufferSize = size
	}
}

// NewService creates a new Service.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = NewStore()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.eventBufferSize <= 0 {
		s.eventBufferSize = DefaultEventBuffer
	}
	s.events = make(chan Event, s.eventBufferSize)
	return s
}

// Load hydrates the store from the repository, most recent first.
func (s *Service) Load(ctx context.Context) error {
	records, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}
	SortRecent(records)
	s.store.Load(records)
	s.logger.Debug("store loaded", "records", len(records))
	return nil
}

// Seed persists records that already carry an id and appends them to the store.
func (s *Service) Seed(ctx context.Context, records []Record) error {
	for _, r := range records {
		if r.ID == "" {
			return fmt.Errorf("seed record %q has no ID", r.Title)
		}
		if err := s.repo.Save(ctx, r); err != nil {
			return fmt.Errorf("failed to seed %s: %w", r.ID, err)
		}
		s.store.Append(r)
		s.emit(EventCreate, r.ID)
	}
	return nil
}

// Add stores a new record built from the draft.
func (s *Service) Add(ctx context.Context, d Draft) (Record, error) {
	if strings.TrimSpace(d.Title) == "" {
		return Record{}, ErrTitleRequired
	}

	r := s.store.Insert(d)
	if err := s.repo.Save(ctx, r); err != nil {
		s.store.Delete(r.ID)
		return Record{}, fmt.Errorf("failed to save %s: %w", r.ID, err)
	}

	s.logger.Info("record added", "id", r.ID, "kind", r.Kind, "title", r.Title)
	s.emit(EventCreate, r.ID)
	return r, nil
}

// SetStatus changes the status of a record. Unknown ids are ignored.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) error {
	current, ok := s.store.Get(id)
	if !ok {
		s.logger.Debug("status update ignored, unknown record", "id", id)
		return nil
	}

	updated := current.Clone()
	updated.Status = status
	if err := s.repo.Save(ctx, updated); err != nil {
		return fmt.Errorf("failed to save %s: %w", id, err)
	}
	s.store.UpdateStatus(id, status)

	s.logger.Info("record status changed", "id", id, "from", current.Status, "to", status)
	s.emit(EventModify, id)
	return nil
}

// Remove deletes a record. Unknown ids are ignored.
func (s *Service) Remove(ctx context.Context, id string) error {
	if _, ok := s.store.Get(id); !ok {
		s.logger.Debug("delete ignored, unknown record", "id", id)
		return nil
	}

	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to delete %s: %w", id, err)
	}
	s.store.Delete(id)

	s.logger.Info("record deleted", "id", id)
	s.emit(EventDelete, id)
	return nil
}

// Get returns a record from the store.
func (s *Service) Get(id string) (Record, bool) {
	return s.store.Get(id)
}

// Records returns the current contents of the store.
func (s *Service) Records() []Record {
	return s.store.Records()
}

// Events returns the change feed. It is closed by Close.
func (s *Service) Events() <-chan Event {
	return s.events
}

// Watch observes changes made directly in the repository, if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx, pattern)
}

// Close stops publishing events.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.events)
	}
	return nil
}

func (s *Service) emit(t EventType, id string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return
	}
	select {
	case s.events <- Event{Type: t, ID: id, Timestamp: time.Now().Unix()}:
	default:
		s.logger.Debug("event dropped, buffer full", "type", t, "id", id)
	}
}

// SortRecent orders records by date, newest first. Ties keep id order.
func SortRecent(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		if c := cmp.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
