package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/aretw0/myagri/pkg/adapters/lifecycle"
	"github.com/aretw0/myagri/pkg/core"
	"github.com/aretw0/myagri/pkg/sim"
)

func TestStoreSource(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan core.Event, 2)
	in <- core.Event{Type: core.EventCreate, ID: "1"}
	in <- core.Event{Type: core.EventDelete, ID: "1"}
	close(in)

	src := adapter.NewStoreSource(in)
	require.NoError(t, src.Start(ctx))

	var got []string
	for e := range src.Events() {
		got = append(got, e.String())
	}
	assert.Equal(t, []string{"CREATE 1", "DELETE 1"}, got)
}

func TestSimulationSource_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	in := make(chan sim.Snapshot)
	src := adapter.NewSimulationSource(in)
	require.NoError(t, src.Start(ctx))

	go func() { in <- sim.Snapshot{Phase: sim.PhaseRunning, Day: 2, Speed: 1, Horizon: sim.Horizon} }()
	select {
	case e := <-src.Events():
		assert.Contains(t, e.String(), "day 2")
	case <-time.After(time.Second):
		t.Fatal("snapshot not forwarded")
	}

	cancel()
	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("source did not close after cancel")
	}
}
