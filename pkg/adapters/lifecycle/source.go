// Package lifecycle bridges MyAgri's typed event channels (store changes,
// simulation snapshots) to the generic lifecycle.Source interface.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/myagri/pkg/core"
	"github.com/aretw0/myagri/pkg/sim"
)

type source[E lifecycle.Event] struct {
	events <-chan E
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that forwards every event read from
// events. The output closes when events closes or the Start context ends.
func NewSource[E lifecycle.Event](events <-chan E) lifecycle.Source {
	return &source[E]{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

// NewStoreSource forwards store change events.
func NewStoreSource(events <-chan core.Event) lifecycle.Source {
	return NewSource(events)
}

// NewSimulationSource forwards simulation snapshots.
func NewSimulationSource(snapshots <-chan sim.Snapshot) lifecycle.Source {
	return NewSource(snapshots)
}

func (s *source[E]) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *source[E]) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
