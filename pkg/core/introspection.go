package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Records         int    `json:"records"`
	EventBufferSize int    `json:"event_buffer_size"`
	PendingEvents   int    `json:"pending_events"`
	RepositoryType  string `json:"repository_type"`
	Closed          bool   `json:"closed"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	return ServiceState{
		Records:         s.store.Len(),
		EventBufferSize: s.eventBufferSize,
		PendingEvents:   len(s.events),
		RepositoryType:  repoType,
		Closed:          s.closed,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
