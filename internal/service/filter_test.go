package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
)

func TestFilterEngine_Filter(t *testing.T) {
	repo := newRepo(t, topicRecords())
	f := NewFilterEngine(nil)

	tests := []struct {
		name     string
		topic    string
		category string
		want     []int
	}{
		{name: "everything", topic: entities.All, category: entities.All, want: []int{0, 1, 2, 3, 4, 5}},
		{name: "empty selectors", topic: "", category: "", want: []int{0, 1, 2, 3, 4, 5}},
		{name: "topic only", topic: "topic03", category: entities.All, want: []int{1, 2, 3}},
		{name: "category only", topic: entities.All, category: "noun", want: []int{0, 2}},
		{name: "category case-insensitive", topic: entities.All, category: "VERB", want: []int{1, 3}},
		{name: "topic and category", topic: "topic03", category: "verb", want: []int{1, 3}},
		{name: "unknown topic", topic: "topic99", category: entities.All, want: []int{}},
		{name: "unknown category", topic: entities.All, category: "adverb", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Filter(repo.All(), tt.topic, tt.category)
			assert.Equal(t, tt.want, cardIDs(got))

			for _, c := range got {
				if tt.topic != entities.All && tt.topic != "" {
					assert.True(t, c.HasTopic(tt.topic))
				}
				if tt.category != entities.All && tt.category != "" {
					assert.Equal(t, entities.Selection{Category: tt.category}.Normalize().Category, c.Category)
				}
			}
		})
	}
}

func TestFilterEngine_FilterReturnsNewSlice(t *testing.T) {
	repo := newRepo(t, topicRecords())
	f := NewFilterEngine(nil)

	got := f.Filter(repo.All(), entities.All, entities.All)
	got[0] = got[1]

	assert.Equal(t, 0, repo.All()[0].ID)
}

func TestFilterEngine_CategoryCounts(t *testing.T) {
	repo := newRepo(t, topicRecords())
	f := NewFilterEngine(nil)

	assert.Equal(t, map[string]int{
		entities.All:  6,
		"noun":        2,
		"verb":        2,
		"adjective":   1,
		uncategorized: 1,
	}, f.CategoryCounts(repo.All(), entities.All))

	assert.Equal(t, map[string]int{
		entities.All: 3,
		"noun":       1,
		"verb":       2,
	}, f.CategoryCounts(repo.All(), "topic03"))

	assert.Equal(t, map[string]int{entities.All: 0}, f.CategoryCounts(repo.All(), "topic09"))
}

func TestFilterEngine_AvailableCategories(t *testing.T) {
	repo := newRepo(t, topicRecords())
	f := NewFilterEngine(nil)

	assert.Equal(t, []string{"adjective", "noun", "verb"}, f.AvailableCategories(repo.All(), entities.All))
	assert.Equal(t, []string{"noun"}, f.AvailableCategories(repo.All(), "topic02"))
	assert.Empty(t, f.AvailableCategories(repo.All(), "topic13"))
}

func TestFilterEngine_TopicCounts(t *testing.T) {
	repo := newRepo(t, topicRecords())

	assert.Equal(t, map[string]int{"topic02": 2, "topic03": 3}, NewFilterEngine(nil).TopicCounts(repo.All()))
}

func TestFilterEngine_CardsWithoutTopics(t *testing.T) {
	repo := newRepo(t, topicRecords())

	got := NewFilterEngine(nil).CardsWithoutTopics(repo.All())
	assert.Equal(t, []int{4, 5}, cardIDs(got))
}
