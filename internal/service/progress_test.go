package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aliskhannn/dgt-vocab-bot/internal/storage"
)

func TestProgressTracker_MarkKnownIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, scenarioRecords())
	tr := newTracker(t, repo, storage.NewMemoryStore())

	require.NoError(t, tr.MarkKnown(ctx, 2))
	once := tr.Snapshot()

	require.NoError(t, tr.MarkKnown(ctx, 2))
	assert.Equal(t, once, tr.Snapshot())
	assert.True(t, tr.IsKnown(2))
}

func TestProgressTracker_MarkUnknownRestoresKnownSet(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, scenarioRecords())
	tr := newTracker(t, repo, storage.NewMemoryStore())

	require.NoError(t, tr.MarkKnown(ctx, 0))
	before := tr.KnownIDs()

	require.NoError(t, tr.MarkKnown(ctx, 3))
	require.NoError(t, tr.MarkUnknown(ctx, 3))

	assert.Equal(t, before, tr.KnownIDs())
	assert.False(t, tr.IsKnown(3))
}

func TestProgressTracker_UnknownCard(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, scenarioRecords())
	tr := newTracker(t, repo, storage.NewMemoryStore())

	assert.ErrorIs(t, tr.MarkKnown(ctx, 42), ErrCardNotFound)
	assert.ErrorIs(t, tr.RecordInteraction(ctx, 1, 42), ErrCardNotFound)
	assert.Zero(t, tr.LastInteraction(1))
}

func TestProgressTracker_MarkKnownClearsAttemptedWrong(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, scenarioRecords())
	tr := newTracker(t, repo, storage.NewMemoryStore())

	require.NoError(t, tr.MarkAttemptedWrong(ctx, 1, 2))
	assert.True(t, tr.AttemptedWrong(1))

	require.NoError(t, tr.MarkKnown(ctx, 1))
	assert.False(t, tr.AttemptedWrong(1))
	assert.True(t, tr.AttemptedWrong(2))
}

func TestProgressTracker_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, scenarioRecords())
	store := storage.NewMemoryStore()

	first := newTracker(t, repo, store)
	require.NoError(t, first.MarkKnown(ctx, 1))
	require.NoError(t, first.MarkKnown(ctx, 3))
	require.NoError(t, first.RecordInteraction(ctx, 0, 2))
	require.NoError(t, first.RecordInteraction(ctx, 3))
	require.NoError(t, first.MarkAttemptedWrong(ctx, 0))

	second := newTracker(t, repo, store)
	for _, c := range repo.All() {
		assert.Equal(t, first.IsKnown(c.ID), second.IsKnown(c.ID), "card %d", c.ID)
		assert.Equal(t, first.LastInteraction(c.ID), second.LastInteraction(c.ID), "card %d", c.ID)
		assert.Equal(t, first.AttemptedWrong(c.ID), second.AttemptedWrong(c.ID), "card %d", c.ID)
	}
	assert.Equal(t, first.Snapshot(), second.Snapshot())
}

func TestProgressTracker_StoredLayout(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, scenarioRecords())
	store := storage.NewMemoryStore()
	tr := newTracker(t, repo, store)

	require.NoError(t, tr.MarkKnown(ctx, 2))
	require.NoError(t, tr.MarkKnown(ctx, 0))
	require.NoError(t, tr.RecordInteraction(ctx, 3))

	known, ok, err := store.Get(ctx, KeyKnown)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[0, 2]`, known)

	history, ok, err := store.Get(ctx, KeyHistory)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"3": 1000}`, history)
}

func TestProgressTracker_CorruptStateFailsOpen(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, scenarioRecords())
	store := storage.NewMemoryStore()

	require.NoError(t, store.Set(ctx, KeyKnown, "{not an array"))
	require.NoError(t, store.Set(ctx, KeyHistory, `{"1": 5000, "17": 6000}`))
	require.NoError(t, store.Set(ctx, KeyUnknown, `[2, 99]`))

	core, logs := observer.New(zapcore.WarnLevel)
	tr := NewProgressTracker(store, repo.Exists, zap.New(core))

	require.NoError(t, tr.Load(ctx))

	assert.Empty(t, tr.KnownIDs())
	assert.Equal(t, int64(5000), tr.LastInteraction(1))
	assert.Zero(t, tr.LastInteraction(17))
	assert.True(t, tr.AttemptedWrong(2))
	assert.False(t, tr.AttemptedWrong(99))

	entries := logs.FilterMessage("corrupt progress record, starting empty").All()
	require.Len(t, entries, 1)
	assert.Equal(t, KeyKnown, entries[0].ContextMap()["key"])
}

func TestProgressTracker_ResetSubsetKeepsKnown(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, scenarioRecords())
	tr := newTracker(t, repo, storage.NewMemoryStore())

	require.NoError(t, tr.MarkKnown(ctx, 1))
	require.NoError(t, tr.RecordInteraction(ctx, 1, 2))

	require.NoError(t, tr.Reset(ctx, []int{1}))

	assert.True(t, tr.IsKnown(1))
	assert.Zero(t, tr.LastInteraction(1))
	assert.NotZero(t, tr.LastInteraction(2))
}

func TestProgressTracker_ResetAll(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, scenarioRecords())
	store := storage.NewMemoryStore()
	tr := newTracker(t, repo, store)

	require.NoError(t, tr.MarkKnown(ctx, 1))
	require.NoError(t, tr.RecordInteraction(ctx, 2))
	require.NoError(t, tr.MarkAttemptedWrong(ctx, 3))

	require.NoError(t, tr.Reset(ctx, nil))

	assert.Empty(t, tr.KnownIDs())
	assert.Zero(t, tr.LastInteraction(2))
	assert.False(t, tr.AttemptedWrong(3))

	for _, key := range []string{KeyKnown, KeyHistory, KeyUnknown} {
		_, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
}

func TestProgressTracker_LoadMergesStoredData(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, scenarioRecords())
	store := storage.NewMemoryStore()

	tr := newTracker(t, repo, storage.NewMemoryStore())
	require.NoError(t, tr.RecordInteraction(ctx, 0))
	tr.store = store

	require.NoError(t, store.Set(ctx, KeyKnown, `[3]`))
	require.NoError(t, store.Set(ctx, KeyHistory, `{"1": 42}`))
	require.NoError(t, tr.Load(ctx))

	assert.Equal(t, []int{3}, tr.KnownIDs())
	assert.Equal(t, int64(42), tr.LastInteraction(1))
	assert.Equal(t, int64(1000), tr.LastInteraction(0))
}

func TestProgressTracker_MarkReviewedSingleWrite(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, scenarioRecords())
	tr := newTracker(t, repo, storage.NewMemoryStore())

	require.NoError(t, tr.MarkAttemptedWrong(ctx, 1))
	require.NoError(t, tr.MarkReviewed(ctx, 1, true))
	assert.True(t, tr.IsKnown(1))
	assert.False(t, tr.AttemptedWrong(1))
	first := tr.LastInteraction(1)
	assert.Positive(t, first)

	require.NoError(t, tr.MarkReviewed(ctx, 1, false))
	assert.False(t, tr.IsKnown(1))
	assert.Greater(t, tr.LastInteraction(1), first)

	assert.ErrorIs(t, tr.MarkReviewed(ctx, 9, true), ErrCardNotFound)
}
