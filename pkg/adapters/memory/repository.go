// Package memory provides process-local implementations of the core
// storage ports. Nothing survives a restart.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/myagri/pkg/core"
)

// Repository implements core.Repository with a map.
type Repository struct {
	mu      sync.RWMutex
	records map[string]core.Record
}

func NewRepository() *Repository {
	return &Repository{records: map[string]core.Record{}}
}

func (r *Repository) Initialize(ctx context.Context) error { return nil }

func (r *Repository) Save(ctx context.Context, rec core.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[rec.ID] = rec.Clone()
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (core.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return core.Record{}, core.ErrNotFound
	}
	return rec.Clone(), nil
}

func (r *Repository) List(ctx context.Context) ([]core.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]core.Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec.Clone())
	}
	slices.SortFunc(out, func(a, b core.Record) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "memory-repository"
}

// KV implements core.KV with a map.
type KV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewKV() *KV {
	return &KV{values: map[string][]byte{}}
}

func (kv *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	v, ok := kv.values[key]
	return slices.Clone(v), ok, nil
}

func (kv *KV) Set(ctx context.Context, key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	kv.values[key] = slices.Clone(value)
	return nil
}

func (kv *KV) Delete(ctx context.Context, key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	delete(kv.values, key)
	return nil
}

var (
	_ core.Repository = (*Repository)(nil)
	_ core.KV         = (*KV)(nil)
)
