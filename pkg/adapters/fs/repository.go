package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/myagri/pkg/core"
)

// Defaults applied by NewRepository.
const (
	DefaultSystemDir = ".myagri"
	DefaultFormat    = ".md"
)

// Repository implements core.Repository with one file per record.
//
// Layout:
//
//	{Path}/{id}.md          record as YAML frontmatter + body (default)
//	{Path}/{id}.json|.yaml  also read; kept in their format on save
//	{Path}/{SystemDir}/     index cache and session file
type Repository struct {
	Path        string
	config      Config
	cache       *cache
	serializers map[string]Serializer

	mu            sync.RWMutex
	watcherActive bool
	lastReconcile *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string
	MustExist bool   // fail Initialize instead of creating Path
	ReadOnly  bool   // reject Save and Delete with core.ErrReadOnly
	SystemDir string // defaults to ".myagri"
	Format    string // extension for new records, defaults to ".md"
	Logger    *slog.Logger
	// ErrorHandler receives errors from the watch worker that have no caller
	// to return to. Defaults to logging them.
	ErrorHandler func(error)
	// Serializers overrides the extension to serializer map.
	Serializers map[string]Serializer
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.Format == "" {
		config.Format = DefaultFormat
	}
	if !strings.HasPrefix(config.Format, ".") {
		config.Format = "." + config.Format
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.Serializers == nil {
		config.Serializers = DefaultSerializers()
	}

	return &Repository{
		Path:        config.Path,
		config:      config,
		cache:       newCache(config.Path, config.SystemDir),
		serializers: config.Serializers,
	}
}

// Initialize creates the store directory unless MustExist is set.
func (r *Repository) Initialize(ctx context.Context) error {
	if _, ok := r.serializers[r.config.Format]; !ok {
		return fmt.Errorf("unsupported format %q", r.config.Format)
	}

	if r.config.MustExist || r.config.ReadOnly {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("store path does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("store path is not a directory: %s", r.Path)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Join(r.Path, r.config.SystemDir), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

// Save writes the record to {id}{ext}. A record that already exists keeps
// its file format; new records use the configured format.
func (r *Repository) Save(ctx context.Context, rec core.Record) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateID(rec.ID); err != nil {
		return err
	}

	ext := r.config.Format
	if existing, ok := r.findFile(rec.ID); ok {
		ext = filepath.Ext(existing)
	}

	s, ok := r.serializers[ext]
	if !ok {
		return fmt.Errorf("unsupported format %q", ext)
	}
	data, err := s.Serialize(rec)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}

	filename := rec.ID + ext
	if err := writeFileAtomic(filepath.Join(r.Path, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	reason := "update " + rec.ID
	if val, ok := ctx.Value(core.ChangeReasonKey).(string); ok && val != "" {
		reason = val
	}
	r.config.Logger.Debug("record saved", "file", filename, "reason", reason)
	return nil
}

// Get reads a record by ID.
func (r *Repository) Get(ctx context.Context, id string) (core.Record, error) {
	if err := validateID(id); err != nil {
		return core.Record{}, err
	}
	name, ok := r.findFile(id)
	if !ok {
		return core.Record{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return r.readFile(name)
}

// List returns every parseable record in the store.
//
// Strategy:
//  1. Load the index cache from disk.
//  2. Read the store directory (flat; the system directory is skipped).
//  3. For each supported file, use the cached record if the mtime matches,
//     otherwise parse it and refresh the cache.
//  4. Prune vanished files and save the cache back.
func (r *Repository) List(ctx context.Context) ([]core.Record, error) {
	records, _, err := r.scan(ctx)
	return records, err
}

// Reconcile rescans the store and reports what changed on disk since the
// previous scan. The watch worker uses it when fsnotify drops events.
func (r *Repository) Reconcile(ctx context.Context) ([]core.Event, error) {
	_, events, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}
	r.recordReconcile()
	return events, nil
}

func (r *Repository) scan(ctx context.Context) ([]core.Record, []core.Event, error) {
	if err := r.cache.Load(); err != nil {
		r.config.Logger.Warn("ignoring unreadable index", "error", err)
	}

	entries, err := os.ReadDir(r.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read store: %w", err)
	}

	now := time.Now().Unix()
	var (
		records []core.Record
		events  []core.Event
		seen    = make(map[string]bool)
	)
	for _, d := range entries {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		name := d.Name()
		if d.IsDir() || !r.isRecordFile(name) {
			continue
		}
		info, err := d.Info()
		if err != nil {
			continue
		}
		mtime := info.ModTime()
		seen[name] = true

		if entry, hit := r.cache.Get(name, mtime); hit {
			records = append(records, entry.Record.Clone())
			continue
		}

		known := r.cache.Has(name)
		rec, err := r.readFile(name)
		if err != nil {
			r.config.Logger.Warn("skipping unreadable record", "file", name, "error", err)
			continue
		}
		r.cache.Set(name, &indexEntry{Record: rec.Clone(), LastModified: mtime})
		records = append(records, rec)

		evType := core.EventCreate
		if known {
			evType = core.EventModify
		}
		events = append(events, core.Event{Type: evType, ID: rec.ID, Timestamp: now})
	}

	for _, id := range r.cache.Prune(seen) {
		events = append(events, core.Event{Type: core.EventDelete, ID: id, Timestamp: now})
	}
	if !r.config.ReadOnly {
		if err := r.cache.Save(); err != nil {
			r.config.Logger.Warn("failed to save index", "error", err)
		}
	}

	return records, events, nil
}

// Delete removes a record file.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := validateID(id); err != nil {
		return err
	}

	name, ok := r.findFile(id)
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	if err := os.Remove(filepath.Join(r.Path, name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", core.ErrNotFound, id)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	r.config.Logger.Debug("record deleted", "file", name)
	return nil
}

// findFile returns the filename holding id, trying the configured format
// first and the other supported extensions in sorted order.
func (r *Repository) findFile(id string) (string, bool) {
	for _, ext := range r.extensions() {
		name := id + ext
		if info, err := os.Stat(filepath.Join(r.Path, name)); err == nil && !info.IsDir() {
			return name, true
		}
	}
	return "", false
}

func (r *Repository) extensions() []string {
	exts := []string{r.config.Format}
	others := make([]string, 0, len(r.serializers))
	for ext := range r.serializers {
		if ext != r.config.Format {
			others = append(others, ext)
		}
	}
	slices.Sort(others)
	return append(exts, others...)
}

func (r *Repository) readFile(name string) (core.Record, error) {
	ext := filepath.Ext(name)
	s, ok := r.serializers[ext]
	if !ok {
		return core.Record{}, fmt.Errorf("unsupported extension %q", ext)
	}

	data, err := os.ReadFile(filepath.Join(r.Path, name))
	if err != nil {
		if os.IsNotExist(err) {
			return core.Record{}, fmt.Errorf("%w: %s", core.ErrNotFound, name)
		}
		return core.Record{}, err
	}

	rec, err := s.Parse(bytes.NewReader(data))
	if err != nil {
		return core.Record{}, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	// The filename is authoritative.
	rec.ID = strings.TrimSuffix(name, ext)
	return rec, nil
}

// isRecordFile filters out temp files, dotfiles and unsupported extensions.
func (r *Repository) isRecordFile(name string) bool {
	if strings.HasPrefix(name, TempFilePrefix) || strings.HasPrefix(name, ".") {
		return false
	}
	_, ok := r.serializers[filepath.Ext(name)]
	return ok
}

var errInvalidID = errors.New("invalid record id")

func validateID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty", errInvalidID)
	case id != filepath.Base(id), strings.ContainsAny(id, `/\`), strings.HasPrefix(id, "."):
		return fmt.Errorf("%w: %q", errInvalidID, id)
	}
	return nil
}

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}

func (r *Repository) recordReconcile() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastReconcile = &now
}

var (
	_ core.Repository = (*Repository)(nil)
	_ core.Watchable  = (*Repository)(nil)
)
