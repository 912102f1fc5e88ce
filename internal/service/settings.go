package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
)

// KeyLanguage holds the learner's translation language ("en" or "ru").
const KeyLanguage = "dgt-vocab-language"

var ErrUnsupportedLanguage = errors.New("unsupported language")

// SettingsStore keeps learner preferences next to the progress records.
// A full progress reset leaves them untouched.
type SettingsStore struct {
	store KVStore
}

func NewSettingsStore(store KVStore) *SettingsStore {
	return &SettingsStore{store: store}
}

// Language returns the stored language, or def when none is stored.
func (s *SettingsStore) Language(ctx context.Context, def entities.Language) (entities.Language, error) {
	raw, ok, err := s.store.Get(ctx, KeyLanguage)
	if err != nil {
		return def, fmt.Errorf("load language: %w", err)
	}
	if !ok {
		return def, nil
	}

	lang, err := ParseLanguage(raw)
	if err != nil {
		// An unknown stored value is replaced on the next SetLanguage.
		return def, nil
	}
	return lang, nil
}

// SetLanguage stores the learner's language.
func (s *SettingsStore) SetLanguage(ctx context.Context, lang entities.Language) error {
	if _, err := ParseLanguage(string(lang)); err != nil {
		return err
	}
	if err := s.store.Set(ctx, KeyLanguage, string(lang)); err != nil {
		return fmt.Errorf("save language: %w", err)
	}
	return nil
}

// ParseLanguage validates a language code.
func ParseLanguage(s string) (entities.Language, error) {
	switch lang := entities.Language(s); lang {
	case entities.LanguageEnglish, entities.LanguageRussian:
		return lang, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
}

// Toggle returns the other translation language.
func Toggle(lang entities.Language) entities.Language {
	if lang == entities.LanguageRussian {
		return entities.LanguageEnglish
	}
	return entities.LanguageRussian
}
