package platform

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aretw0/myagri/pkg/adapters/fs"
	"github.com/aretw0/myagri/pkg/adapters/memory"
	"github.com/aretw0/myagri/pkg/adapters/sqlite"
	"github.com/aretw0/myagri/pkg/core"
	"github.com/aretw0/myagri/pkg/session"
)

// Init prepares the storage adapter selected by the options and returns it.
// The uri is adapter-specific: a directory for "fs", ignored for "memory".
func Init(uri string, opts ...Option) (core.Repository, error) {
	return initRepository(context.Background(), uri, newOptions(opts))
}

func initRepository(ctx context.Context, uri string, o *options) (core.Repository, error) {
	if o.repository != nil {
		return o.repository, nil
	}

	var repo core.Repository
	switch o.adapter {
	case AdapterFS:
		fsRepo, err := initFS(uri, o)
		if err != nil {
			return nil, err
		}
		repo = fsRepo
	case AdapterMemory:
		repo = memory.NewRepository()
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err := repo.Initialize(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// initFS builds the filesystem adapter.
func initFS(path string, o *options) (*fs.Repository, error) {
	resolved := storePath(path, o)

	serializers := fs.DefaultSerializers()
	for ext, s := range o.serializers {
		serializer, ok := s.(fs.Serializer)
		if !ok {
			return nil, fmt.Errorf("serializer for %s must implement fs.Serializer", ext)
		}
		serializers[ext] = serializer
	}

	return fs.NewRepository(fs.Config{
		Path:         resolved,
		MustExist:    o.mustExist,
		ReadOnly:     o.readOnly,
		SystemDir:    o.systemDir,
		Format:       o.format,
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
		Serializers:  serializers,
	}), nil
}

// storePath applies the dev sandbox rules. Read-only access and an explicit
// WithDevSafety(false) bypass the sandbox.
func storePath(path string, o *options) string {
	bypass := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypass)
	resolved := ResolveStorePath(path, useTemp)

	if useTemp && o.logger != nil && resolved != filepath.Clean(path) {
		o.logger.Warn("running in SAFE MODE (dev sandbox)", "original_path", path, "resolved_path", resolved)
	}
	return resolved
}

// OpenSession opens the session key-value store of the store at uri.
// The returned closer releases the backend and must be called when done.
func OpenSession(uri string, opts ...Option) (*session.Session, io.Closer, error) {
	o := newOptions(opts)
	ctx := context.Background()

	systemDir := o.systemDir
	if systemDir == "" {
		systemDir = fs.DefaultSystemDir
	}
	dir := filepath.Join(storePath(uri, o), systemDir)

	var (
		kv     core.KV
		closer io.Closer = nopCloser{}
	)
	switch o.sessionBackend {
	case SessionFile, "":
		if o.readOnly {
			kv = fs.NewReadOnlyKV(filepath.Join(dir, "session.json"))
		} else {
			kv = fs.NewKV(filepath.Join(dir, "session.json"))
		}
	case SessionSQLite:
		db, err := sqlite.Open(ctx, filepath.Join(dir, "session.db"))
		if err != nil {
			return nil, nil, err
		}
		kv, closer = db, db
	case SessionMemory:
		kv = memory.NewKV()
	default:
		return nil, nil, fmt.Errorf("unknown session backend: %s", o.sessionBackend)
	}

	var sessOpts []session.Option
	if o.logger != nil {
		sessOpts = append(sessOpts, session.WithLogger(o.logger))
	}
	return session.New(kv, sessOpts...), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
