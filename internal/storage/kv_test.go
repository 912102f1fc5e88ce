package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testStores(t *testing.T) map[string]KVStore {
	t.Helper()
	ctx := context.Background()

	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "progress.json"), nil)
	require.NoError(t, err)

	sqliteStore, err := NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]KVStore{
		"memory":   NewMemoryStore(),
		"file":     fileStore,
		"sqlite":   sqliteStore,
		"prefixed": Prefixed(NewMemoryStore(), "user:1:"),
	}
}

func TestKVStore_Contract(t *testing.T) {
	ctx := context.Background()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, "a", "1"))
			v, ok, err := store.Get(ctx, "a")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "1", v)

			require.NoError(t, store.Set(ctx, "a", "2"))
			v, _, _ = store.Get(ctx, "a")
			assert.Equal(t, "2", v)

			require.NoError(t, store.SetMany(ctx, map[string]string{"b": "[1,2]", "c": `{"0":5}`}))
			v, _, _ = store.Get(ctx, "b")
			assert.Equal(t, "[1,2]", v)
			v, _, _ = store.Get(ctx, "c")
			assert.Equal(t, `{"0":5}`, v)

			require.NoError(t, store.Remove(ctx, "a", "b", "never-set"))
			_, ok, _ = store.Get(ctx, "a")
			assert.False(t, ok)
			_, ok, _ = store.Get(ctx, "b")
			assert.False(t, ok)
			_, ok, _ = store.Get(ctx, "c")
			assert.True(t, ok)

			require.NoError(t, store.Remove(ctx))
		})
	}
}

func TestFileStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "progress.json")

	s, err := NewFileStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetMany(ctx, map[string]string{"k": "v"}))

	reopened, err := NewFileStore(path, nil)
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_EmptyPath(t *testing.T) {
	_, err := NewFileStore("", nil)
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestFileStore_CorruptFailsOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "progress.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dgt-vocab-progress": "[1,2`), 0o600))

	core, logs := observer.New(zap.WarnLevel)
	store, closeFn, err := Open(ctx, Options{Driver: DriverFile, FilePath: path, Logger: zap.New(core)})
	require.NoError(t, err)
	defer func() { _ = closeFn() }()

	_, ok, err := store.Get(ctx, "dgt-vocab-progress")
	require.NoError(t, err)
	assert.False(t, ok)

	require.Equal(t, 1, logs.FilterMessage("corrupt storage file, starting empty").Len())

	aside, err := os.ReadFile(path + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, `{"dgt-vocab-progress": "[1,2`, string(aside))

	require.NoError(t, store.Set(ctx, "k", "v"))
	reopened, err := NewFileStore(path, nil)
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "progress.db")

	s, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	v, ok, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestPrefixed_IsolatesUsers(t *testing.T) {
	ctx := context.Background()
	base := NewMemoryStore()
	alice := Prefixed(base, "user:1:")
	bob := Prefixed(base, "user:2:")

	require.NoError(t, alice.Set(ctx, "k", "alice"))
	require.NoError(t, bob.Set(ctx, "k", "bob"))

	v, _, _ := alice.Get(ctx, "k")
	assert.Equal(t, "alice", v)

	raw, ok, _ := base.Get(ctx, "user:2:k")
	assert.True(t, ok)
	assert.Equal(t, "bob", raw)

	require.NoError(t, alice.Remove(ctx, "k"))
	_, ok, _ = bob.Get(ctx, "k")
	assert.True(t, ok)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := Open(ctx, Options{Driver: DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	assert.NoError(t, closeFn())

	s, closeFn, err = Open(ctx, Options{Driver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "kv.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	assert.NoError(t, closeFn())

	_, _, err = Open(ctx, Options{Driver: "redis"})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
