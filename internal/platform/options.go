package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/myagri/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterMemory = "memory"
)

// Session backends accepted by WithSessionBackend.
const (
	SessionFile   = "file"
	SessionSQLite = "sqlite"
	SessionMemory = "memory"
)

// options holds the internal configuration for the MyAgri service.
type options struct {
	repository     core.Repository
	logger         *slog.Logger
	adapter        string
	systemDir      string
	format         string
	eventBuffer    int
	readOnly       bool
	mustExist      bool
	forceTemp      bool
	devSafety      bool
	clock          func() time.Time
	errorHandler   func(error)
	serializers    map[string]any
	sessionBackend string
	seed           []core.Record
}

// Option defines a functional option for configuring MyAgri.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		adapter:        AdapterFS,
		devSafety:      true,
		serializers:    make(map[string]any),
		sessionBackend: SessionFile,
	}
}

func newOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger for the service and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a custom storage adapter.
// If provided, the adapter named by WithAdapter is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter selects the storage adapter by name ("fs" or "memory").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithSystemDir sets the hidden directory name. Defaults to ".myagri".
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}

// WithFormat sets the file format of new records (".md", ".json" or ".yaml").
func WithFormat(ext string) Option {
	return func(o *options) {
		o.format = ext
	}
}

// WithEventBuffer sets the size of the change event buffer.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
//  1. Save and Delete return core.ErrReadOnly.
//  2. The store directory is not created.
//  3. Cache and session updates are not persisted.
//  4. The dev sandbox is bypassed (reads use the real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithMustExist fails initialization when the store directory is missing.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithForceTemp forces the store into the system temp directory.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox used under `go run` and `go test`.
// By default (true) a dev run writes to a temporary directory instead of
// the requested path.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithClock sets the clock used to date new activities.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithWatcherErrorHandler receives errors raised inside the watch loop,
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithSerializer registers a serializer for an extension. s must implement
// the adapter's Serializer interface (fs.Serializer); this is checked at Init.
func WithSerializer(ext string, s any) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}

// WithSessionBackend selects where the session is kept: "file" (default,
// inside the system directory), "sqlite" or "memory".
func WithSessionBackend(name string) Option {
	return func(o *options) {
		o.sessionBackend = name
	}
}

// WithSeed stores records when the repository turns out to be empty,
// e.g. the sample activities on first run.
func WithSeed(records []core.Record) Option {
	return func(o *options) {
		o.seed = records
	}
}
