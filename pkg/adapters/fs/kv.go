package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/myagri/pkg/core"
)

// KV implements core.KV as a single JSON object file mapping keys to their
// values as text, the way a browser's localStorage holds them.
type KV struct {
	path     string
	readOnly bool
	mu       sync.Mutex
}

// NewKV opens the key-value file at path. The file is created on first write.
func NewKV(path string) *KV {
	return &KV{path: path}
}

// NewReadOnlyKV opens the key-value file at path; Set and Delete fail with
// core.ErrReadOnly.
func NewReadOnlyKV(path string) *KV {
	return &KV{path: path, readOnly: true}
}

// SessionPath returns the conventional session file inside a store.
func SessionPath(storePath, systemDir string) string {
	if systemDir == "" {
		systemDir = DefaultSystemDir
	}
	return filepath.Join(storePath, systemDir, "session.json")
}

func (kv *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	values, err := kv.load()
	if err != nil {
		return nil, false, err
	}
	v, ok := values[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (kv *KV) Set(ctx context.Context, key string, value []byte) error {
	if kv.readOnly {
		return core.ErrReadOnly
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()

	values, err := kv.load()
	if err != nil {
		return err
	}
	values[key] = string(value)
	return kv.store(values)
}

func (kv *KV) Delete(ctx context.Context, key string) error {
	if kv.readOnly {
		return core.ErrReadOnly
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()

	values, err := kv.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return kv.store(values)
}

func (kv *KV) load() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(kv.path)
	if os.IsNotExist(err) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", kv.path, err)
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("corrupt key-value file %s: %w", kv.path, err)
	}
	return values, nil
}

func (kv *KV) store(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(kv.path), 0755); err != nil {
		return err
	}
	return writeFileAtomic(kv.path, data, 0600)
}

var _ core.KV = (*KV)(nil)
