package service

import (
	"errors"
	"math/rand"
	"time"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
)

const (
	defaultMaxOptions  = 4
	minOptionAttempts  = 50
	attemptsPerCard    = 10
	minQuestionOptions = 2
)

var ErrInsufficientOptions = errors.New("not enough distinct options for a question")

// OptionGenerator builds multiple choice options for quiz questions.
type OptionGenerator struct {
	maxOptions  int
	maxAttempts int // 0 derives the bound from the pool size

	rng *rand.Rand
}

// NewOptionGenerator creates a new option generator. maxOptions below 2
// falls back to 4.
func NewOptionGenerator(rng *rand.Rand, maxOptions, maxAttempts int) *OptionGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if maxOptions < minQuestionOptions {
		maxOptions = defaultMaxOptions
	}

	return &OptionGenerator{
		maxOptions:  maxOptions,
		maxAttempts: maxAttempts,
		rng:         rng,
	}
}

// Generate returns the target plus distractors drawn at random from pool,
// shuffled. No two options share an id or a translation in lang.
func (g *OptionGenerator) Generate(target *entities.Card, pool []*entities.Card, lang entities.Language) ([]*entities.Card, error) {
	want := min(g.maxOptions, len(pool))

	options := []*entities.Card{target}
	usedIDs := map[int]bool{target.ID: true}
	usedTexts := map[string]bool{target.TranslationFor(lang): true}

	limit := g.attemptLimit(len(pool))
	for attempt := 0; attempt < limit && len(options) < want; attempt++ {
		candidate := pool[g.rng.Intn(len(pool))]

		text := candidate.TranslationFor(lang)
		if usedIDs[candidate.ID] || usedTexts[text] {
			continue
		}

		options = append(options, candidate)
		usedIDs[candidate.ID] = true
		usedTexts[text] = true
	}

	if len(options) < minQuestionOptions {
		return nil, ErrInsufficientOptions
	}

	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options, nil
}

func (g *OptionGenerator) attemptLimit(poolSize int) int {
	if g.maxAttempts > 0 {
		return g.maxAttempts
	}
	return max(poolSize*attemptsPerCard, minOptionAttempts)
}
