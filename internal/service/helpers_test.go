package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/dgt-vocab-bot/internal/repository"
	"github.com/aliskhannn/dgt-vocab-bot/internal/storage"
)

// scenarioRecords is the four-card catalog used across the quiz tests.
func scenarioRecords() []entities.CardRecord {
	return []entities.CardRecord{
		{Word: "coche", Translation: "car", Category: "noun"},
		{Word: "conducir", Translation: "to drive", Category: "verb"},
		{Word: "rápido", Translation: "fast", Category: "adjective"},
		{Word: "calle", Translation: "street", Category: "noun"},
	}
}

func topicRecords() []entities.CardRecord {
	return []entities.CardRecord{
		{Word: "señal", Translation: "sign", Perevod: "знак", Category: "noun", Topics: []string{"topic02"}},
		{Word: "adelantar", Translation: "to overtake", Perevod: "обгонять", Category: "verb", Topics: []string{"topic03"}},
		{Word: "carril", Translation: "lane", Perevod: "полоса", Category: "Noun", Topics: []string{"topic02", "topic03"}},
		{Word: "frenar", Translation: "to brake", Category: "verb", Topics: []string{"topic03"}},
		{Word: "peligroso", Translation: "dangerous", Category: "adjective"},
		{Word: "despacio", Translation: "slowly"},
	}
}

func newRepo(t *testing.T, records []entities.CardRecord) *repository.CardRepository {
	t.Helper()

	repo, err := repository.NewCardRepository(records)
	require.NoError(t, err)
	return repo
}

// fixedClock returns a clock that advances one second per call.
func fixedClock(start int64) func() time.Time {
	ms := start
	return func() time.Time {
		ms += 1000
		return time.UnixMilli(ms)
	}
}

func newTracker(t *testing.T, repo *repository.CardRepository, store KVStore) *ProgressTracker {
	t.Helper()

	tr := NewProgressTracker(store, repo.Exists, nil)
	tr.now = fixedClock(0)
	require.NoError(t, tr.Load(context.Background()))
	return tr
}

func newTestSession(t *testing.T, records []entities.CardRecord, opts SessionOptions) (*Session, *storage.MemoryStore) {
	t.Helper()

	if opts.Seed == 0 {
		opts.Seed = 7
	}

	store := storage.NewMemoryStore()
	s, err := OpenSession(context.Background(), newRepo(t, records), store, opts, nil)
	require.NoError(t, err)
	s.progress.now = fixedClock(0)

	return s, store
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func cardIDs(cards []*entities.Card) []int {
	ids := make([]int, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}
