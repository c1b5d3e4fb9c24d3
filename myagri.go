package myagri

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/myagri/internal/platform"
	"github.com/aretw0/myagri/pkg/core"
	"github.com/aretw0/myagri/pkg/diagnosis"
	"github.com/aretw0/myagri/pkg/query"
	"github.com/aretw0/myagri/pkg/session"
	"github.com/aretw0/myagri/pkg/sim"
)

// --- Types ---

type (
	Record   = core.Record
	Draft    = core.Draft
	Status   = core.Status
	Category = core.Category
	Event    = core.Event
	Service  = core.Service
	Filter   = query.Filter
	Driver   = sim.Driver
	Snapshot = sim.Snapshot
	Analyzer = diagnosis.Analyzer
	Session  = session.Session
)

// --- Configuration ---

// Option defines a functional option for configuring MyAgri.
type Option = platform.Option

// WithLogger sets the logger for the service and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository injects a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter selects the storage adapter by name ("fs" or "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSystemDir sets the hidden directory name (default ".myagri").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithFormat sets the file format of new records (".md", ".json", ".yaml").
func WithFormat(ext string) Option {
	return platform.WithFormat(ext)
}

// WithEventBuffer sets the size of the change event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithReadOnly rejects every write with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithMustExist fails when the store directory is missing.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithForceTemp forces the store into the system temp directory.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the `go run` sandbox (enabled by default).
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithClock sets the clock used to date new activities.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithWatcherErrorHandler receives errors raised inside the watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithSerializer registers a file serializer (fs.Serializer) for ext.
func WithSerializer(ext string, s any) Option {
	return platform.WithSerializer(ext, s)
}

// WithSeed stores records when the repository is empty.
func WithSeed(records []core.Record) Option {
	return platform.WithSeed(records)
}

// WithSessionBackend selects the session store ("file", "sqlite", "memory").
func WithSessionBackend(name string) Option {
	return platform.WithSessionBackend(name)
}

// --- Factory ---

// New creates a MyAgri service over the store at path.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init initializes a repository explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// OpenSession opens the session of the store at path. Close the returned
// closer when done.
func OpenSession(path string, opts ...Option) (*session.Session, io.Closer, error) {
	return platform.OpenSession(path, opts...)
}

// NewDriver creates an idle crop simulation.
func NewDriver(opts ...sim.Option) *sim.Driver {
	return sim.NewDriver(opts...)
}

// NewAnalyzer creates the mocked crop analyzer.
func NewAnalyzer(opts ...diagnosis.Option) *diagnosis.Analyzer {
	return diagnosis.NewAnalyzer(opts...)
}

// --- Driver & Analyzer options ---

// WithSpeed sets the initial simulation speed, clamped to [1,5].
func WithSpeed(v int) sim.Option {
	return sim.WithSpeed(v)
}

// WithOnChange registers a hook called after every simulation transition.
func WithOnChange(fn func(sim.Snapshot)) sim.Option {
	return sim.WithOnChange(fn)
}

// WithDelay sets the mocked analysis delay.
func WithDelay(d time.Duration) diagnosis.Option {
	return diagnosis.WithDelay(d)
}

// --- Queries ---

// Search returns the records matching f, in their original order.
func Search(records []core.Record, f query.Filter) []core.Record {
	return query.Search(records, f)
}

// AllTags returns the sorted union of the records' tags.
func AllTags(records []core.Record) []string {
	return query.AllTags(records)
}

// --- Utils ---

// FindStoreRoot looks upwards from startDir for a MyAgri store.
func FindStoreRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir, "")
}

// IsDevRun reports whether the process runs via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}
