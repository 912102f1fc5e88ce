package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/dgt-vocab-bot/internal/storage"
)

func TestSelector_BuildExcludesKnown(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, topicRecords())
	tr := newTracker(t, repo, storage.NewMemoryStore())
	require.NoError(t, tr.MarkKnown(ctx, 1))
	require.NoError(t, tr.MarkKnown(ctx, 4))

	sel := NewSelector(nil, seeded(1), nil)

	ws := sel.Build(repo.All(), entities.DefaultSelection(), tr)
	assert.ElementsMatch(t, []int{0, 2, 3, 5}, ws.IDs())
	for _, c := range ws.Cards() {
		assert.False(t, tr.IsKnown(c.ID))
	}
	assert.Zero(t, ws.Cursor())

	all := entities.DefaultSelection()
	all.ShowAllCards = true
	ws = sel.Build(repo.All(), all, tr)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5}, ws.IDs())

	ws = sel.Build(repo.All(), entities.Selection{Topic: "topic03", Category: "verb", ShowAllCards: true}, tr)
	assert.ElementsMatch(t, []int{1, 3}, ws.IDs())
}

func TestSelector_BuildEmpty(t *testing.T) {
	repo := newRepo(t, topicRecords())
	tr := newTracker(t, repo, storage.NewMemoryStore())

	ws := NewSelector(nil, seeded(1), nil).Build(repo.All(), entities.Selection{Topic: "topic12"}, tr)

	assert.Zero(t, ws.Len())
	assert.Zero(t, ws.Cursor())
	_, err := ws.Current()
	assert.ErrorIs(t, err, ErrNoCards)
}

func TestSelector_ShuffleKeepsCards(t *testing.T) {
	repo := newRepo(t, topicRecords())
	sel := NewSelector(nil, seeded(3), nil)

	cards := repo.All()
	shuffled := append([]*entities.Card(nil), cards...)
	sel.Shuffle(shuffled)
	assert.ElementsMatch(t, cards, shuffled)

	sel.BasicShuffle(shuffled)
	assert.ElementsMatch(t, cards, shuffled)

	sel.Shuffle(nil)
}

func TestSelector_RecencyBias(t *testing.T) {
	const (
		size   = 10
		trials = 2000
	)

	records := make([]entities.CardRecord, size)
	for i := range records {
		records[i] = entities.CardRecord{Word: fmt.Sprintf("w%d", i), Translation: fmt.Sprintf("t%d", i)}
	}
	repo := newRepo(t, records)

	// Card i was seen at i+1, so card 0 is the stalest and card 9 the freshest.
	// The catalog order is reversed to make sure the sort does the work.
	tr := newTracker(t, repo, storage.NewMemoryStore())
	for i := 0; i < size; i++ {
		tr.history[i] = int64(i + 1)
	}
	cards := repo.All()
	reversed := make([]*entities.Card, size)
	for i, c := range cards {
		reversed[size-1-i] = c
	}

	sel := NewSelector(nil, seeded(42), nil)

	var stalestSum, freshestSum, stalestMoved int
	for range trials {
		ws := sel.Build(reversed, entities.DefaultSelection(), tr)
		ids := ws.IDs()
		for pos, id := range ids {
			switch id {
			case 0:
				stalestSum += pos
				if pos > 0 {
					stalestMoved++
				}
			case size - 1:
				freshestSum += pos
			}
		}
	}

	stalestMean := float64(stalestSum) / trials
	freshestMean := float64(freshestSum) / trials

	assert.Less(t, stalestMean, freshestMean)
	assert.Less(t, stalestMean, 3.0)
	assert.Greater(t, freshestMean, 5.0)
	assert.Positive(t, stalestMoved, "the stalest card should not always come first")
	assert.Less(t, stalestMoved, trials, "the stalest card should sometimes come first")
}

func TestWorkingSet_Navigation(t *testing.T) {
	repo := newRepo(t, scenarioRecords())
	ws := NewWorkingSet(repo.All())

	c, err := ws.Current()
	require.NoError(t, err)
	assert.Equal(t, 0, c.ID)

	c, err = ws.Previous()
	require.NoError(t, err)
	assert.Equal(t, 3, c.ID)

	c, err = ws.Advance()
	require.NoError(t, err)
	assert.Equal(t, 0, c.ID)

	require.NoError(t, ws.SetCursor(2))
	assert.ErrorIs(t, ws.SetCursor(4), ErrCursorOutOfRange)
	assert.ErrorIs(t, ws.SetCursor(-1), ErrCursorOutOfRange)
	assert.Equal(t, 2, ws.Cursor())

	_, err = NewWorkingSet(nil).Advance()
	assert.ErrorIs(t, err, ErrNoCards)
}

func TestWorkingSet_Remove(t *testing.T) {
	repo := newRepo(t, scenarioRecords())

	tests := []struct {
		name       string
		cursor     int
		remove     int
		wantCursor int
		wantIDs    []int
	}{
		{name: "before cursor", cursor: 2, remove: 0, wantCursor: 1, wantIDs: []int{1, 2, 3}},
		{name: "at cursor moves to next", cursor: 1, remove: 1, wantCursor: 1, wantIDs: []int{0, 2, 3}},
		{name: "after cursor", cursor: 1, remove: 3, wantCursor: 1, wantIDs: []int{0, 1, 2}},
		{name: "last card wraps", cursor: 3, remove: 3, wantCursor: 0, wantIDs: []int{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := NewWorkingSet(append([]*entities.Card(nil), repo.All()...))
			require.NoError(t, ws.SetCursor(tt.cursor))

			assert.True(t, ws.Remove(tt.remove))
			assert.Equal(t, tt.wantIDs, ws.IDs())
			assert.Equal(t, tt.wantCursor, ws.Cursor())
			assert.False(t, ws.Contains(tt.remove))
		})
	}

	ws := NewWorkingSet(append([]*entities.Card(nil), repo.All()...))
	assert.False(t, ws.Remove(9))
	assert.Equal(t, 4, ws.Len())
}
