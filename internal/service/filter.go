package service

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
)

const uncategorized = "uncategorized"

// FilterEngine derives catalog subsets from topic and category selectors.
type FilterEngine struct {
	logger *zap.Logger
}

// NewFilterEngine creates a FilterEngine. A nil logger disables logging.
func NewFilterEngine(logger *zap.Logger) *FilterEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FilterEngine{logger: logger}
}

// Filter keeps cards tagged with topic, then cards whose category equals
// category (case-insensitive). "all" or an empty selector matches everything.
// The result is a new slice in catalog order; the cards are shared.
func (f *FilterEngine) Filter(cards []*entities.Card, topic, category string) []*entities.Card {
	out := byTopic(cards, topic)
	afterTopic := len(out)

	if isWildcard(category) {
		out = append([]*entities.Card(nil), out...)
	} else {
		out = byCategory(out, category)
	}

	f.logger.Debug("cards filtered",
		zap.String("topic", topic),
		zap.String("category", category),
		zap.Int("total", len(cards)),
		zap.Int("after_topic", afterTopic),
		zap.Int("after_category", len(out)),
	)

	return out
}

// CategoryCounts counts cards per category within a topic. The "all" key holds
// the total and cards without a category are counted as "uncategorized".
func (f *FilterEngine) CategoryCounts(cards []*entities.Card, topic string) map[string]int {
	counts := map[string]int{entities.All: 0}
	for _, c := range byTopic(cards, topic) {
		counts[entities.All]++

		category := strings.ToLower(c.Category)
		if category == "" {
			category = uncategorized
		}
		counts[category]++
	}
	return counts
}

// AvailableCategories returns the sorted categories present within a topic.
func (f *FilterEngine) AvailableCategories(cards []*entities.Card, topic string) []string {
	seen := make(map[string]struct{})
	for _, c := range byTopic(cards, topic) {
		if c.Category != "" {
			seen[strings.ToLower(c.Category)] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// TopicCounts counts cards per topic id. A card with several topics counts
// once for each of them.
func (f *FilterEngine) TopicCounts(cards []*entities.Card) map[string]int {
	counts := make(map[string]int)
	for _, c := range cards {
		for _, t := range c.Topics {
			counts[t]++
		}
	}
	return counts
}

// CardsWithoutTopics returns the cards that carry no topic tag.
func (f *FilterEngine) CardsWithoutTopics(cards []*entities.Card) []*entities.Card {
	var out []*entities.Card
	for _, c := range cards {
		if len(c.Topics) == 0 {
			out = append(out, c)
		}
	}
	return out
}

func byTopic(cards []*entities.Card, topic string) []*entities.Card {
	if isWildcard(topic) {
		return cards
	}

	out := make([]*entities.Card, 0, len(cards))
	for _, c := range cards {
		if c.HasTopic(topic) {
			out = append(out, c)
		}
	}
	return out
}

func byCategory(cards []*entities.Card, category string) []*entities.Card {
	out := make([]*entities.Card, 0, len(cards))
	for _, c := range cards {
		if strings.EqualFold(c.Category, category) {
			out = append(out, c)
		}
	}
	return out
}

func isWildcard(selector string) bool {
	s := strings.TrimSpace(selector)
	return s == "" || strings.EqualFold(s, entities.All)
}
