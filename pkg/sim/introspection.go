package sim

import (
	"time"

	"github.com/aretw0/introspection"
)

// DriverState exposes internal state for observability.
type DriverState struct {
	Phase       Phase         `json:"phase"`
	Day         int           `json:"day"`
	Speed       int           `json:"speed"`
	Period      time.Duration `json:"period"`
	TickPending bool          `json:"tick_pending"`
	Closed      bool          `json:"closed"`
}

// State implements introspection.Introspectable.
func (d *Driver) State() any {
	d.mu.Lock()
	defer d.mu.Unlock()

	return DriverState{
		Phase:       d.phase,
		Day:         d.day,
		Speed:       d.speed,
		Period:      d.period(),
		TickPending: d.timer != nil,
		Closed:      d.closed,
	}
}

// ComponentType implements introspection.Component.
func (d *Driver) ComponentType() string {
	return "simulation"
}

var _ introspection.Introspectable = (*Driver)(nil)
var _ introspection.Component = (*Driver)(nil)
