package fs

import (
	"sync"
	"time"

	"github.com/aretw0/myagri/pkg/core"
)

// debouncer coalesces bursts of events for the same record. Editors and
// atomic renames produce several fsnotify events per save; only the last
// one within the window is delivered.
type debouncer struct {
	window time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window:  window,
		pending: make(map[string]*time.Timer),
	}
}

// add schedules deliver(e) after the window, replacing any event for the
// same ID that is still waiting.
func (d *debouncer) add(e core.Event, deliver func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if t, ok := d.pending[e.ID]; ok && t.Stop() {
		d.wg.Done()
	}

	d.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(d.window, func() {
		defer d.wg.Done()

		d.mu.Lock()
		if d.pending[e.ID] == t {
			delete(d.pending, e.ID)
		}
		stopped := d.stopped
		d.mu.Unlock()

		if !stopped {
			deliver(e)
		}
	})
	d.pending[e.ID] = t
}

// stopAndWait drops pending events and waits up to timeout for deliveries
// already in flight.
func (d *debouncer) stopAndWait(timeout time.Duration) bool {
	d.mu.Lock()
	d.stopped = true
	for id, t := range d.pending {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.pending, id)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
