package typed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/myagri/pkg/adapters/memory"
	"github.com/aretw0/myagri/pkg/typed"
)

type FarmProfile struct {
	Name     string `json:"name"`
	Hectares int    `json:"hectares"`
}

func TestEntry_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKV()
	entry := typed.NewEntry[FarmProfile](kv, "farm")

	_, ok, err := entry.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, entry.Set(ctx, FarmProfile{Name: "Les Tilleuls", Hectares: 42}))

	got, ok, err := entry.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, FarmProfile{Name: "Les Tilleuls", Hectares: 42}, got)

	require.NoError(t, entry.Delete(ctx))
	_, ok, err = entry.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEntry_CorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKV()
	require.NoError(t, kv.Set(ctx, "farm", []byte("{not json")))

	_, ok, err := typed.NewEntry[FarmProfile](kv, "farm").Get(ctx)
	assert.True(t, ok)
	assert.ErrorIs(t, err, typed.ErrDecode)
}
