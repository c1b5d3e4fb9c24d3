// Package sim drives the crop simulation: a day counter that advances from
// 1 to Horizon on a periodic tick scaled by a speed multiplier.
//
// State machine:
//
//	idle     --Play-->  running
//	paused   --Play-->  running
//	running  --Pause--> paused
//	running  --tick-->  running | finished (day == Horizon)
//	finished --Play-->  idle (restart: same as Reset)
//	any      --Reset--> idle
//
// Exactly one tick may be pending at a time. Every tick is a one-shot timer
// armed after the previous one fired, so ticks never overlap.
package sim

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	// Horizon is the number of simulated days.
	Horizon = 30
	// BaseInterval is the tick period at speed 1.
	BaseInterval = 2 * time.Second

	MinSpeed = 1
	MaxSpeed = 5
)

// Phase is the current state of the driver.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseRunning  Phase = "running"
	PhasePaused   Phase = "paused"
	PhaseFinished Phase = "finished"
)

// Snapshot is the read-only view handed to the renderer.
type Snapshot struct {
	Phase   Phase   `json:"phase"`
	Day     int     `json:"day"`
	Speed   int     `json:"speed"`
	Horizon int     `json:"horizon"`
	Visible []Point `json:"visible"`
}

func (s Snapshot) String() string {
	return fmt.Sprintf("%s day %d/%d x%d", s.Phase, s.Day, s.Horizon, s.Speed)
}

// Latest returns the last visible point.
func (s Snapshot) Latest() (Point, bool) {
	if len(s.Visible) == 0 {
		return Point{}, false
	}
	return s.Visible[len(s.Visible)-1], true
}

// Driver owns the simulation state and its single tick timer.
type Driver struct {
	mu       sync.Mutex
	phase    Phase
	day      int
	speed    int
	interval time.Duration
	series   []Point

	sched Scheduler
	timer Timer
	// gen invalidates ticks armed before the last Pause/Reset.
	gen    uint64
	closed bool

	rng      *rand.Rand
	onChange func(Snapshot)
	logger   *slog.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithScheduler replaces the runtime timers.
func WithScheduler(s Scheduler) Option {
	return func(d *Driver) {
		d.sched = s
	}
}

// WithRand sets the random source used to generate series.
func WithRand(rng *rand.Rand) Option {
	return func(d *Driver) {
		d.rng = rng
	}
}

// WithSpeed sets the initial speed multiplier.
func WithSpeed(v int) Option {
	return func(d *Driver) {
		d.speed = clampSpeed(v)
	}
}

// WithInterval overrides BaseInterval.
func WithInterval(i time.Duration) Option {
	return func(d *Driver) {
		if i > 0 {
			d.interval = i
		}
	}
}

// WithOnChange registers a hook called after every transition, outside
// the driver's lock. It must not block.
func WithOnChange(fn func(Snapshot)) Option {
	return func(d *Driver) {
		d.onChange = fn
	}
}

// WithLogger sets the logger for the driver.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// NewDriver creates an idle driver on day 1 with a fresh series.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{
		phase:    PhaseIdle,
		day:      1,
		speed:    MinSpeed,
		interval: BaseInterval,
		sched:    RealScheduler{},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d.series = GenerateSeries(d.rng, Horizon)
	return d
}

// Play starts or resumes ticking. Already running is a no-op.
// On a finished run it restarts from scratch and stays idle.
func (d *Driver) Play() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	switch d.phase {
	case PhaseRunning:
		d.mu.Unlock()
		return
	case PhaseFinished:
		d.restartFromFinished()
	default:
		d.phase = PhaseRunning
		d.schedule()
		d.logger.Debug("simulation running", "day", d.day, "speed", d.speed)
	}
	snap := d.snapshot()
	d.mu.Unlock()

	d.notify(snap)
}

// Pause suspends ticking and keeps the current day. Only acts while running.
func (d *Driver) Pause() {
	d.mu.Lock()
	if d.phase != PhaseRunning {
		d.mu.Unlock()
		return
	}
	d.stopTimer()
	d.phase = PhasePaused
	d.logger.Debug("simulation paused", "day", d.day)
	snap := d.snapshot()
	d.mu.Unlock()

	d.notify(snap)
}

// Reset returns to idle on day 1 with a newly generated series.
func (d *Driver) Reset() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.reset()
	snap := d.snapshot()
	d.mu.Unlock()

	d.notify(snap)
}

// SetSpeed changes the multiplier, clamped to [MinSpeed, MaxSpeed].
// A pending tick keeps its delay; the following ticks use the new period.
func (d *Driver) SetSpeed(v int) {
	d.mu.Lock()
	d.speed = clampSpeed(v)
	snap := d.snapshot()
	d.mu.Unlock()

	d.notify(snap)
}

// Snapshot returns the current state with the series clipped to the
// current day.
func (d *Driver) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshot()
}

// Period returns the current tick period.
func (d *Driver) Period() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.period()
}

// Close cancels any pending tick. The driver ignores Play and Reset after it.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopTimer()
	if d.phase == PhaseRunning {
		d.phase = PhasePaused
	}
	d.closed = true
}

func (d *Driver) tick(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.phase != PhaseRunning {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.day++
	if d.day >= Horizon {
		d.day = Horizon
		d.phase = PhaseFinished
		d.logger.Info("simulation finished", "days", Horizon)
	} else {
		d.schedule()
	}
	snap := d.snapshot()
	d.mu.Unlock()

	d.notify(snap)
}

// restartFromFinished is the explicit finished --Play--> idle transition.
func (d *Driver) restartFromFinished() {
	d.logger.Debug("play on finished simulation, restarting")
	d.reset()
}

// reset must be called with d.mu held.
func (d *Driver) reset() {
	d.stopTimer()
	d.phase = PhaseIdle
	d.day = 1
	d.series = GenerateSeries(d.rng, Horizon)
}

// schedule must be called with d.mu held. It cancels the previous timer
// before arming the next one.
func (d *Driver) schedule() {
	d.stopTimer()
	gen := d.gen
	d.timer = d.sched.AfterFunc(d.period(), func() {
		d.tick(gen)
	})
}

// stopTimer must be called with d.mu held.
func (d *Driver) stopTimer() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// period must be called with d.mu held.
func (d *Driver) period() time.Duration {
	return d.interval / time.Duration(d.speed)
}

// snapshot must be called with d.mu held.
func (d *Driver) snapshot() Snapshot {
	visible := make([]Point, d.day)
	copy(visible, d.series[:d.day])
	return Snapshot{
		Phase:   d.phase,
		Day:     d.day,
		Speed:   d.speed,
		Horizon: Horizon,
		Visible: visible,
	}
}

func (d *Driver) notify(s Snapshot) {
	if d.onChange != nil {
		d.onChange(s)
	}
}

func clampSpeed(v int) int {
	return min(max(v, MinSpeed), MaxSpeed)
}
