package service

import (
	"errors"
	"slices"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
)

var (
	ErrNoCards          = errors.New("no cards in working set")
	ErrCursorOutOfRange = errors.New("cursor out of range")
)

// WorkingSet is the ordered subset of cards being presented, with a cursor.
// It is not safe for concurrent use; Session serialises access.
type WorkingSet struct {
	cards  []*entities.Card
	cursor int
}

// NewWorkingSet wraps cards with the cursor on the first card.
func NewWorkingSet(cards []*entities.Card) *WorkingSet {
	return &WorkingSet{cards: cards}
}

// Cards returns a copy of the ordered cards.
func (w *WorkingSet) Cards() []*entities.Card {
	return slices.Clone(w.cards)
}

// IDs returns the card ids in working-set order.
func (w *WorkingSet) IDs() []int {
	ids := make([]int, len(w.cards))
	for i, c := range w.cards {
		ids[i] = c.ID
	}
	return ids
}

func (w *WorkingSet) Len() int    { return len(w.cards) }
func (w *WorkingSet) Cursor() int { return w.cursor }

// Current returns the card under the cursor.
func (w *WorkingSet) Current() (*entities.Card, error) {
	if len(w.cards) == 0 {
		return nil, ErrNoCards
	}
	return w.cards[w.cursor], nil
}

// Advance moves the cursor forward, wrapping to the first card.
func (w *WorkingSet) Advance() (*entities.Card, error) {
	if len(w.cards) == 0 {
		return nil, ErrNoCards
	}
	w.cursor = (w.cursor + 1) % len(w.cards)
	return w.cards[w.cursor], nil
}

// Previous moves the cursor back, wrapping to the last card.
func (w *WorkingSet) Previous() (*entities.Card, error) {
	if len(w.cards) == 0 {
		return nil, ErrNoCards
	}
	w.cursor = (w.cursor - 1 + len(w.cards)) % len(w.cards)
	return w.cards[w.cursor], nil
}

// SetCursor places the cursor at position i.
func (w *WorkingSet) SetCursor(i int) error {
	if i < 0 || i >= len(w.cards) {
		return ErrCursorOutOfRange
	}
	w.cursor = i
	return nil
}

// Contains reports whether the card is in the working set.
func (w *WorkingSet) Contains(id int) bool {
	return w.index(id) >= 0
}

// Remove drops the card from the working set. The cursor stays on the card
// that followed it and wraps to 0 past the end.
func (w *WorkingSet) Remove(id int) bool {
	i := w.index(id)
	if i < 0 {
		return false
	}

	w.cards = slices.Delete(w.cards, i, i+1)
	if i < w.cursor {
		w.cursor--
	}
	if w.cursor >= len(w.cards) {
		w.cursor = 0
	}
	return true
}

func (w *WorkingSet) index(id int) int {
	return slices.IndexFunc(w.cards, func(c *entities.Card) bool { return c.ID == id })
}
