package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
)

var (
	ErrNoCards         = errors.New("vocabulary data not found")
	ErrCardNotFound    = errors.New("card not found")
	ErrMalformedRecord = errors.New("malformed catalog record")
	ErrUnsupportedFile = errors.New("unsupported catalog file")
)

// CardRepository provides read-only access to the vocabulary catalog.
// Cards are kept in catalog order; a card's id is its position.
type CardRepository struct {
	cards []*entities.Card
}

// NewCardRepository builds the catalog from raw records, assigning ids by position.
func NewCardRepository(records []entities.CardRecord) (*CardRepository, error) {
	if len(records) == 0 {
		return nil, ErrNoCards
	}

	cards := make([]*entities.Card, 0, len(records))
	for i, rec := range records {
		card, err := newCard(i, rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		cards = append(cards, card)
	}

	return &CardRepository{cards: cards}, nil
}

// Load reads the catalog from a JSON or XLSX file, chosen by extension.
func Load(path string) (*CardRepository, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".xlsx":
		cfg := DefaultXLSXConfig()
		cfg.FilePath = path
		return LoadXLSX(cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
}

// LoadJSON reads a JSON array of card records.
func LoadJSON(path string) (*CardRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var records []entities.CardRecord
	if err = json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog JSON: %w", err)
	}

	return NewCardRepository(records)
}

// All returns every card in catalog order. The slice must not be modified.
func (r *CardRepository) All() []*entities.Card {
	return r.cards
}

// Len returns the number of cards in the catalog.
func (r *CardRepository) Len() int {
	return len(r.cards)
}

// GetByID returns the card with the given id.
func (r *CardRepository) GetByID(id int) (*entities.Card, error) {
	if !r.Exists(id) {
		return nil, ErrCardNotFound
	}
	return r.cards[id], nil
}

// Exists reports whether id refers to a catalog card.
func (r *CardRepository) Exists(id int) bool {
	return id >= 0 && id < len(r.cards)
}

// Categories returns the sorted set of categories present in the catalog.
func (r *CardRepository) Categories() []string {
	seen := make(map[string]struct{})
	for _, c := range r.cards {
		if c.Category != "" {
			seen[c.Category] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Topics returns the sorted set of topic ids used by the catalog.
func (r *CardRepository) Topics() []string {
	seen := make(map[string]struct{})
	for _, c := range r.cards {
		for _, t := range c.Topics {
			seen[t] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func newCard(id int, rec entities.CardRecord) (*entities.Card, error) {
	word := strings.TrimSpace(rec.Word)
	translation := strings.TrimSpace(rec.Translation)
	if word == "" || translation == "" {
		return nil, ErrMalformedRecord
	}

	topics := make([]string, 0, len(rec.Topics))
	for _, t := range rec.Topics {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}

	return &entities.Card{
		ID:                   id,
		Word:                 word,
		Translation:          translation,
		SecondaryTranslation: strings.TrimSpace(rec.Perevod),
		Category:             strings.ToLower(strings.TrimSpace(rec.Category)),
		Topics:               topics,
		Example:              strings.TrimSpace(rec.Example),
	}, nil
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
