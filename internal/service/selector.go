package service

import (
	"math"
	"math/rand"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
)

// Selector builds working sets ordered least-recently-seen first.
type Selector struct {
	filter *FilterEngine
	logger *zap.Logger

	rng *rand.Rand
}

// NewSelector creates a Selector. A nil rng is seeded from the clock.
func NewSelector(filter *FilterEngine, rng *rand.Rand, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if filter == nil {
		filter = NewFilterEngine(logger)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Selector{
		filter: filter,
		logger: logger,
		rng:    rng,
	}
}

// Filter exposes the filter engine the selector uses.
func (s *Selector) Filter() *FilterEngine {
	return s.filter
}

// Build filters cards by the selection, drops known cards unless ShowAllCards
// is set, sorts by last interaction and applies the recency-weighted shuffle.
func (s *Selector) Build(cards []*entities.Card, sel entities.Selection, progress ProgressReader) *WorkingSet {
	sel = sel.Normalize()

	base := s.filter.Filter(cards, sel.Topic, sel.Category)
	if !sel.ShowAllCards {
		base = slices.DeleteFunc(base, func(c *entities.Card) bool {
			return progress.IsKnown(c.ID)
		})
	}

	slices.SortStableFunc(base, func(a, b *entities.Card) int {
		la, lb := progress.LastInteraction(a.ID), progress.LastInteraction(b.ID)
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		default:
			return 0
		}
	})

	s.Shuffle(base)

	s.logger.Debug("working set built",
		zap.String("topic", sel.Topic),
		zap.String("category", sel.Category),
		zap.Bool("show_all", sel.ShowAllCards),
		zap.Int("size", len(base)),
	)

	return NewWorkingSet(base)
}

// Shuffle partially shuffles cards in place. Position i swaps with a random
// position at most floor(sqrt(i+1)*2) away, so early cards move little.
func (s *Selector) Shuffle(cards []*entities.Card) {
	n := len(cards)
	for i := 0; i < n; i++ {
		maxOffset := int(math.Floor(math.Sqrt(float64(i+1)) * 2))
		offset := s.rng.Intn(maxOffset + 1)

		j := i - offset + s.rng.Intn(2*offset+1)
		j = max(0, min(j, n-1))

		if i != j {
			cards[i], cards[j] = cards[j], cards[i]
		}
	}
}

// BasicShuffle is a uniform Fisher-Yates shuffle.
func (s *Selector) BasicShuffle(cards []*entities.Card) {
	s.rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
}
