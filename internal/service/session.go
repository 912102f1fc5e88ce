package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
)

// SessionOptions configures a learning session built by OpenSession.
type SessionOptions struct {
	MinCards    int
	MaxOptions  int
	MaxAttempts int
	Language    entities.Language
	Selection   entities.Selection
	Seed        int64 // 0 seeds from the clock
}

// Session is one learner's flashcard and quiz state over a shared catalog.
// All methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	cards    CardRepository
	progress *ProgressTracker
	selector *Selector
	quiz     *QuizEngine
	settings *SettingsStore // nil keeps preferences in memory only
	lang     entities.Language
	logger   *zap.Logger

	selection entities.Selection
	ws        *WorkingSet
}

// NewSession wires the components into a session and builds the working set
// for the default selection.
func NewSession(
	cards CardRepository,
	progress *ProgressTracker,
	selector *Selector,
	quiz *QuizEngine,
	lang entities.Language,
	logger *zap.Logger,
) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lang == "" {
		lang = entities.LanguageEnglish
	}

	s := &Session{
		cards:     cards,
		progress:  progress,
		selector:  selector,
		quiz:      quiz,
		lang:      lang,
		logger:    logger,
		selection: entities.DefaultSelection(),
	}
	s.rebuild()

	return s
}

// OpenSession builds every component over store, loads the stored progress
// and returns a session positioned on opts.Selection.
func OpenSession(
	ctx context.Context,
	cards CardRepository,
	store KVStore,
	opts SessionOptions,
	logger *zap.Logger,
) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	progress := NewProgressTracker(store, cards.Exists, logger)
	if err := progress.Load(ctx); err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	selector := NewSelector(NewFilterEngine(logger), rng, logger)
	quiz := NewQuizEngine(
		progress,
		NewOptionGenerator(rng, opts.MaxOptions, opts.MaxAttempts),
		QuizConfig{MinCards: opts.MinCards, Language: opts.Language},
		logger,
	)

	settings := NewSettingsStore(store)
	lang, err := settings.Language(ctx, opts.Language)
	if err != nil {
		return nil, err
	}

	s := NewSession(cards, progress, selector, quiz, opts.Language, logger)
	s.settings = settings
	if lang != "" && lang != s.lang {
		s.lang = lang
		quiz.SetLanguage(lang)
	}
	if opts.Selection != (entities.Selection{}) {
		s.SetSelection(opts.Selection)
	}

	return s, nil
}

// Language returns the translation language of the session.
func (s *Session) Language() entities.Language {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lang
}

// SetLanguage switches the translation shown on cards and quiz options and
// stores it as the learner's preference. A running question keeps its options.
func (s *Session) SetLanguage(ctx context.Context, lang entities.Language) error {
	if _, err := ParseLanguage(string(lang)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lang = lang
	s.quiz.SetLanguage(lang)

	if s.settings == nil {
		return nil
	}
	return s.settings.SetLanguage(ctx, lang)
}

// WorkingSet returns the ordered cards currently presented.
func (s *Session) WorkingSet() []*entities.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ws.Cards()
}

func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ws.Cursor()
}

// CurrentCard returns the card under the cursor, ErrNoCards when the working set is empty.
func (s *Session) CurrentCard() (*entities.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ws.Current()
}

func (s *Session) AdvanceCursor() (*entities.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ws.Advance()
}

func (s *Session) PreviousCard() (*entities.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ws.Previous()
}

func (s *Session) SetCursor(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ws.SetCursor(i)
}

// ViewCard records an interaction with the current card, as when it is flipped.
func (s *Session) ViewCard(ctx context.Context) (*entities.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.ws.Current()
	if err != nil {
		return nil, err
	}
	if err := s.progress.RecordInteraction(ctx, card.ID); err != nil {
		return card, err
	}
	return card, nil
}

// ViewCardByID records an interaction for a catalog card shown by id, such as
// a card message flipped after the cursor has moved on.
func (s *Session) ViewCardByID(ctx context.Context, id int) (*entities.Card, error) {
	card, err := s.cards.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrCardNotFound, id)
	}
	if err := s.progress.RecordInteraction(ctx, card.ID); err != nil {
		return card, err
	}
	return card, nil
}

// ShuffledWorkingSet returns the working set in a uniformly random order.
// The session's own order is not changed.
func (s *Session) ShuffledWorkingSet() []*entities.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.ws.Cards()
	s.selector.BasicShuffle(cards)
	return cards
}

// IsKnown reports whether the card is marked known.
func (s *Session) IsKnown(id int) bool {
	return s.progress.IsKnown(id)
}

// MarkKnown marks the card known, records the interaction and rebuilds the
// working set.
func (s *Session) MarkKnown(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.progress.MarkReviewed(ctx, id, true)
	if err == nil || !errors.Is(err, ErrCardNotFound) {
		s.rebuild()
	}
	return err
}

// MarkUnknown removes the card from the known set, records the interaction
// and rebuilds the working set.
func (s *Session) MarkUnknown(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.progress.MarkReviewed(ctx, id, false)
	if err == nil || !errors.Is(err, ErrCardNotFound) {
		s.rebuild()
	}
	return err
}

// SetSelection changes the filter context and rebuilds the working set.
func (s *Session) SetSelection(sel entities.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selection = sel.Normalize()
	s.rebuild()
}

func (s *Session) Selection() entities.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.selection
}

// Reshuffle rebuilds the working set, drawing a new weighted order.
func (s *Session) Reshuffle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rebuild()
}

// StartQuiz starts a quiz over the working set.
func (s *Session) StartQuiz(ctx context.Context) (entities.QuizStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.quiz.Start(ctx, s.ws)
}

// AnswerQuiz answers the current question with the selected card.
func (s *Session) AnswerQuiz(ctx context.Context, cardID int) (entities.QuizOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.quiz.Answer(ctx, cardID)
	if err != nil {
		return out, err
	}

	s.logger.Debug("quiz answered",
		zap.Int("card_id", cardID),
		zap.Bool("correct", out.Correct),
		zap.String("state", string(out.State)),
	)
	return out, nil
}

// NextQuestion presents the question after a correct answer.
func (s *Session) NextQuestion(ctx context.Context) (entities.QuizStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.quiz.Next(ctx)
}

// QuizStep returns the current quiz step.
func (s *Session) QuizStep() entities.QuizStep {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.quiz.Current()
}

func (s *Session) QuizScore() entities.QuizScore {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.quiz.Score()
}

// Stats summarises progress within the current selection.
func (s *Session) Stats() entities.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.selector.Filter().Filter(s.cards.All(), s.selection.Topic, s.selection.Category)

	known := 0
	for _, c := range filtered {
		if s.progress.IsKnown(c.ID) {
			known++
		}
	}

	return entities.NewStats(len(filtered), known, s.ws.Len(), s.ws.Cursor())
}

// CategoryCounts counts the cards per category within the selected topic.
func (s *Session) CategoryCounts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.selector.Filter().CategoryCounts(s.cards.All(), s.selection.Topic)
}

// TopicCounts counts the catalog cards per topic.
func (s *Session) TopicCounts() map[string]int {
	return s.selector.Filter().TopicCounts(s.cards.All())
}

// AvailableCategories lists the categories present within the selected topic.
func (s *Session) AvailableCategories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.selector.Filter().AvailableCategories(s.cards.All(), s.selection.Topic)
}

// ResetProgress clears all progress and the quiz score when ids is nil,
// otherwise the interaction history of ids, and rebuilds the working set.
func (s *Session) ResetProgress(ctx context.Context, ids []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.progress.Reset(ctx, ids)
	s.rebuild()
	if ids == nil {
		s.quiz.ResetScore()
	}
	return err
}

// Progress returns a snapshot of the learner's progress.
func (s *Session) Progress() entities.ProgressSnapshot {
	return s.progress.Snapshot()
}

// RestoreProgress replaces the learner's progress with snap and rebuilds the
// working set. Ids outside the catalog are dropped.
func (s *Session) RestoreProgress(ctx context.Context, snap entities.ProgressSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.progress.Restore(ctx, snap)
	s.rebuild()
	return err
}

// CardsWithoutTopics returns the catalog cards that carry no topic tag.
func (s *Session) CardsWithoutTopics() []*entities.Card {
	return s.selector.Filter().CardsWithoutTopics(s.cards.All())
}

// rebuild recomputes the working set and stops any running quiz. Callers hold s.mu.
func (s *Session) rebuild() {
	s.ws = s.selector.Build(s.cards.All(), s.selection, s.progress)
	s.quiz.Reset()
}
