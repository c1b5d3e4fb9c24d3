package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/myagri/pkg/adapters/fs"
	"github.com/aretw0/myagri/pkg/core"
)

// setupRepo creates an initialized repository in a temp dir and returns it
// with the store path.
func setupRepo(t *testing.T, opts ...func(*fs.Config)) (*fs.Repository, string) {
	t.Helper()

	storePath := filepath.Join(t.TempDir(), "store")
	cfg := fs.Config{Path: storePath}
	for _, opt := range opts {
		opt(&cfg)
	}

	repo := fs.NewRepository(cfg)
	if !cfg.MustExist && !cfg.ReadOnly {
		require.NoError(t, repo.Initialize(context.Background()))
	}
	return repo, storePath
}

func TestInitialize(t *testing.T) {
	t.Run("Creates Store and System Directory", func(t *testing.T) {
		_, path := setupRepo(t)

		info, err := os.Stat(filepath.Join(path, ".myagri"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("Fails if MustExist and Missing", func(t *testing.T) {
		repo, _ := setupRepo(t, func(c *fs.Config) { c.MustExist = true })
		assert.Error(t, repo.Initialize(context.Background()))
	})

	t.Run("Fails on Unsupported Format", func(t *testing.T) {
		repo := fs.NewRepository(fs.Config{Path: t.TempDir(), Format: "csv"})
		assert.Error(t, repo.Initialize(context.Background()))
	})
}

func TestRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo, path := setupRepo(t)
	rec := sampleRecord()

	require.NoError(t, repo.Save(ctx, rec))
	_, err := os.Stat(filepath.Join(path, "42.md"))
	require.NoError(t, err, "records default to markdown files")

	got, err := repo.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	rec.Status = core.StatusCompleted
	require.NoError(t, repo.Save(ctx, rec))
	got, err = repo.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, core.StatusCompleted, got.Status)

	require.NoError(t, repo.Delete(ctx, "42"))
	_, err = repo.Get(ctx, "42")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "42"), core.ErrNotFound)
}

func TestRepository_KeepsExistingFormat(t *testing.T) {
	ctx := context.Background()
	repo, path := setupRepo(t)

	hand := `{"kind": "activity", "title": "Semis de maïs", "status": "pending"}`
	require.NoError(t, os.WriteFile(filepath.Join(path, "7.json"), []byte(hand), 0644))

	got, err := repo.Get(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "7", got.ID, "the filename is authoritative for the id")

	got.Status = core.StatusInProgress
	require.NoError(t, repo.Save(ctx, got))

	_, err = os.Stat(filepath.Join(path, "7.md"))
	assert.True(t, os.IsNotExist(err), "save must not fork the record into a second file")
}

func TestRepository_Format(t *testing.T) {
	ctx := context.Background()
	repo, path := setupRepo(t, func(c *fs.Config) { c.Format = "yaml" })

	require.NoError(t, repo.Save(ctx, sampleRecord()))
	_, err := os.Stat(filepath.Join(path, "42.yaml"))
	assert.NoError(t, err)
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()
	repo, path := setupRepo(t)

	for _, id := range []string{"1", "2", "3"} {
		rec := sampleRecord()
		rec.ID = id
		require.NoError(t, repo.Save(ctx, rec))
	}
	// Noise that must be ignored.
	require.NoError(t, os.WriteFile(filepath.Join(path, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(path, fs.TempFilePrefix+"123"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(path, "broken.json"), []byte("{"), 0644))

	list := func() []string {
		records, err := repo.List(ctx)
		require.NoError(t, err)
		ids := make([]string, 0, len(records))
		for _, r := range records {
			ids = append(ids, r.ID)
		}
		sort.Strings(ids)
		return ids
	}

	assert.Equal(t, []string{"1", "2", "3"}, list())

	_, err := os.Stat(filepath.Join(path, ".myagri", "index.json"))
	require.NoError(t, err, "List should persist the index")

	// Second pass is served from the index and must agree.
	assert.Equal(t, []string{"1", "2", "3"}, list())

	require.NoError(t, os.Remove(filepath.Join(path, "2.md")))
	assert.Equal(t, []string{"1", "3"}, list())
}

func TestRepository_Reconcile(t *testing.T) {
	ctx := context.Background()
	repo, path := setupRepo(t)

	for _, id := range []string{"1", "2"} {
		rec := sampleRecord()
		rec.ID = id
		require.NoError(t, repo.Save(ctx, rec))
	}
	_, err := repo.List(ctx)
	require.NoError(t, err)

	// Changes made behind the repository's back.
	require.NoError(t, os.Remove(filepath.Join(path, "1.md")))
	require.NoError(t, os.WriteFile(filepath.Join(path, "3.md"), []byte("---\ntitle: Récolte\n---\n"), 0644))

	events, err := repo.Reconcile(ctx)
	require.NoError(t, err)

	got := map[string]core.EventType{}
	for _, e := range events {
		got[e.ID] = e.Type
	}
	assert.Equal(t, map[string]core.EventType{"1": core.EventDelete, "3": core.EventCreate}, got)

	state := repo.State().(fs.RepositoryState)
	assert.NotNil(t, state.LastReconcile)
}

func TestRepository_ReadOnly(t *testing.T) {
	ctx := context.Background()
	_, path := setupRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(path, "1.md"), []byte("---\ntitle: Semis\n---\n"), 0644))

	repo := fs.NewRepository(fs.Config{Path: path, ReadOnly: true})
	require.NoError(t, repo.Initialize(ctx))

	assert.ErrorIs(t, repo.Save(ctx, sampleRecord()), core.ErrReadOnly)
	assert.ErrorIs(t, repo.Delete(ctx, "1"), core.ErrReadOnly)

	records, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRepository_RejectsUnsafeIDs(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupRepo(t)

	for _, id := range []string{"", "../escape", "a/b", ".hidden"} {
		rec := sampleRecord()
		rec.ID = id
		assert.Error(t, repo.Save(ctx, rec), "id %q", id)
		_, err := repo.Get(ctx, id)
		assert.Error(t, err)
		assert.False(t, errors.Is(err, core.ErrNotFound), "id %q should be invalid, not missing", id)
	}
}

func TestRepository_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupRepo(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := sampleRecord()
			rec.ID = string(rune('a' + i))
			assert.NoError(t, repo.Save(ctx, rec))
		}(i)
	}
	wg.Wait()

	records, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 20)
}
