package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/myagri/pkg/sim"
)

func TestSimulationBanner_ShowsClampedSpeed(t *testing.T) {
	d := sim.NewDriver(sim.WithSpeed(9), sim.WithScheduler(sim.NewManualScheduler()))
	defer d.Close()

	banner := simulationBanner(d)
	assert.Contains(t, banner, "Simulation x5,")
	assert.Contains(t, banner, "400ms")
}
