package sqlitekv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freecbt/journal/internal/kv"
)

func openTestEngine(t *testing.T) *Engine {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "journal.db")
	e, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestOpen_MigratesSchema(t *testing.T) {
	e := openTestEngine(t)
	keys, err := e.Keys(context.Background())
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "journal.db")

	e, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, e.Set(ctx, "a", "1"))
	require.NoError(t, e.Close())

	// reopening runs migrations idempotently and keeps the data
	e2, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer e2.Close()

	v, ok, err := e2.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", v)
}

func TestGetSetRemove(t *testing.T) {
	ctx := context.Background()
	e := openTestEngine(t)

	_, ok, err := e.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok, "absence is not an error")

	require.NoError(t, e.Set(ctx, "a", "1"))
	require.NoError(t, e.Set(ctx, "a", "2"), "set replaces the full value")

	v, ok, err := e.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2", v)

	require.NoError(t, e.Remove(ctx, "a"))
	require.NoError(t, e.Remove(ctx, "a"), "removing an absent key is fine")
	_, ok, _ = e.Get(ctx, "a")
	require.False(t, ok)
}

func TestMultiOps(t *testing.T) {
	ctx := context.Background()
	e := openTestEngine(t)

	require.NoError(t, e.MultiSet(ctx, []kv.Pair{
		{Key: "a", Value: "1"},
		{Key: "b", Value: "2"},
		{Key: "c", Value: "3"},
	}))

	got, err := e.MultiGet(ctx, []string{"c", "missing", "a"})
	require.NoError(t, err)
	require.Equal(t, []kv.Pair{
		{Key: "c", Value: "3", Found: true},
		{Key: "missing", Value: "", Found: false},
		{Key: "a", Value: "1", Found: true},
	}, got, "request order is preserved")

	require.NoError(t, e.MultiRemove(ctx, []string{"a", "b"}))
	keys, err := e.Keys(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"c"}, keys)
}

func TestEmptyBatches(t *testing.T) {
	ctx := context.Background()
	e := openTestEngine(t)

	require.NoError(t, e.MultiSet(ctx, nil))
	require.NoError(t, e.MultiRemove(ctx, nil))

	got, err := e.MultiGet(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestValuesSurviveOddContent(t *testing.T) {
	ctx := context.Background()
	e := openTestEngine(t)

	odd := "line1\nline2\t\"quotes\" and 🌓"
	require.NoError(t, e.Set(ctx, "odd", odd))
	v, ok, err := e.Get(ctx, "odd")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, odd, v)
}
