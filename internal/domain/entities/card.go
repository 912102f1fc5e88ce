// Package entities contains domain entities used across the application.
package entities

// Language selects which translation field is shown and quizzed.
type Language string

const (
	LanguageEnglish Language = "en" // primary translation
	LanguageRussian Language = "ru" // secondary translation (perevod)
)

// Card represents a single vocabulary entry of the catalog.
// Cards are created once at load time and shared by reference afterwards.
type Card struct {
	ID                   int      `json:"id"`          // catalog position, assigned at load time
	Word                 string   `json:"word"`        // Spanish word or phrase
	Translation          string   `json:"translation"` // English translation
	SecondaryTranslation string   `json:"perevod"`     // Russian translation, may be empty
	Category             string   `json:"category"`    // grammatical class, lower-case ("noun", "verb")
	Topics               []string `json:"topics"`      // topic identifiers ("topic01"...)
	Example              string   `json:"example"`     // usage example
}

// HasTopic reports whether the card is tagged with the given topic id.
func (c *Card) HasTopic(topic string) bool {
	for _, t := range c.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// TranslationFor returns the translation shown for the given language.
// The secondary translation falls back to the primary one when it is empty.
func (c *Card) TranslationFor(lang Language) string {
	if lang == LanguageRussian && c.SecondaryTranslation != "" {
		return c.SecondaryTranslation
	}
	return c.Translation
}

// CardRecord is the raw catalog entry as supplied by a loader, without an id.
type CardRecord struct {
	Word        string   `json:"word"`
	Translation string   `json:"translation"`
	Perevod     string   `json:"perevod"`
	Category    string   `json:"category"`
	Example     string   `json:"example"`
	Topics      []string `json:"topics"`
}
