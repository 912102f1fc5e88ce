package entities

import (
	"fmt"
	"strings"
)

// Selection is the transient filter context chosen by the user.
type Selection struct {
	Topic        string // "all" or topic id
	Category     string // "all" or category
	ShowAllCards bool   // include known cards in the working set
}

// DefaultSelection returns the selection used when a session starts.
func DefaultSelection() Selection {
	return Selection{Topic: All, Category: All}
}

// Normalize replaces empty selectors with the wildcard and lower-cases the category.
func (s Selection) Normalize() Selection {
	if strings.TrimSpace(s.Topic) == "" {
		s.Topic = All
	}
	s.Category = strings.ToLower(strings.TrimSpace(s.Category))
	if s.Category == "" {
		s.Category = All
	}
	return s
}

// Describe returns a short human readable description of the active filter,
// or an empty string when nothing is filtered.
func (s Selection) Describe() string {
	s = s.Normalize()

	switch {
	case s.Topic != All && s.Category != All:
		return fmt.Sprintf("%s category + %s topic", s.Category, TopicName(s.Topic))
	case s.Topic != All:
		return fmt.Sprintf("%s topic", TopicName(s.Topic))
	case s.Category != All:
		return fmt.Sprintf("%s category", s.Category)
	default:
		return ""
	}
}
