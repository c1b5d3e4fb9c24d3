// Package typed gives type-safe access to values kept in an opaque
// core.KV. Values are stored as JSON.
package typed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/myagri/pkg/core"
)

// ErrDecode marks a stored value that does not decode into the entry type.
var ErrDecode = errors.New("stored value does not match type")

// Entry is a typed view of a single key.
type Entry[T any] struct {
	kv  core.KV
	key string
}

// NewEntry creates a typed view of key in kv.
func NewEntry[T any](kv core.KV, key string) *Entry[T] {
	return &Entry[T]{kv: kv, key: key}
}

// Key returns the underlying key.
func (e *Entry[T]) Key() string {
	return e.key
}

// Get decodes the stored value. A missing key returns the zero value and false.
func (e *Entry[T]) Get(ctx context.Context) (T, bool, error) {
	var value T
	raw, ok, err := e.kv.Get(ctx, e.key)
	if err != nil {
		return value, false, fmt.Errorf("failed to read %s: %w", e.key, err)
	}
	if !ok {
		return value, false, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, true, fmt.Errorf("%w: %s: %w", ErrDecode, e.key, err)
	}
	return value, true, nil
}

// Set encodes and stores value.
func (e *Entry[T]) Set(ctx context.Context, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", e.key, err)
	}
	return e.kv.Set(ctx, e.key, raw)
}

// Delete removes the key.
func (e *Entry[T]) Delete(ctx context.Context) error {
	return e.kv.Delete(ctx, e.key)
}
