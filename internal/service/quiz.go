package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
)

const DefaultMinQuizCards = 2

var (
	ErrInsufficientCards  = errors.New("not enough cards for a quiz")
	ErrQuizNotStarted     = errors.New("quiz not started")
	ErrNoActiveQuestion   = errors.New("no question awaiting an answer")
	ErrNotAnOption        = errors.New("card is not an option of the current question")
	ErrOptionAlreadyTried = errors.New("option already tried")
)

// QuizConfig tunes the quiz engine.
type QuizConfig struct {
	MinCards int               // smallest working set a quiz starts on
	Language entities.Language // translation field used for options
}

// QuizEngine runs multiple choice quizzes over a working set.
// Answers mutate the working set it was started on.
type QuizEngine struct {
	progress ProgressWriter
	options  *OptionGenerator
	cfg      QuizConfig
	logger   *zap.Logger

	ws       *WorkingSet
	state    entities.QuizState
	question *entities.Question
	lastCard *entities.Card
	score    entities.QuizScore
}

// NewQuizEngine creates an idle quiz engine.
func NewQuizEngine(progress ProgressWriter, options *OptionGenerator, cfg QuizConfig, logger *zap.Logger) *QuizEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MinCards < DefaultMinQuizCards {
		cfg.MinCards = DefaultMinQuizCards
	}
	if cfg.Language == "" {
		cfg.Language = entities.LanguageEnglish
	}

	return &QuizEngine{
		progress: progress,
		options:  options,
		cfg:      cfg,
		logger:   logger,
		state:    entities.QuizIdle,
	}
}

// Start resets the score and presents the first question on ws.
// With no unknown cards the quiz completes; with one it ends on that card.
// A working set smaller than MinCards returns ErrInsufficientCards and the
// engine stays idle.
func (q *QuizEngine) Start(ctx context.Context, ws *WorkingSet) (entities.QuizStep, error) {
	q.Reset()
	q.score = entities.QuizScore{}
	q.ws = ws

	step, err := q.advance(ctx)
	if err != nil {
		q.ws = nil
		return step, err
	}

	q.logger.Debug("quiz started",
		zap.String("state", string(step.State)),
		zap.Int("working_set", ws.Len()),
	)
	return step, nil
}

// Answer evaluates the selected option of the current question.
func (q *QuizEngine) Answer(ctx context.Context, cardID int) (entities.QuizOutcome, error) {
	if q.state != entities.QuizAwaitingAnswer || q.question == nil {
		return entities.QuizOutcome{}, ErrNoActiveQuestion
	}

	question := q.question
	if !question.HasOption(cardID) {
		return entities.QuizOutcome{}, fmt.Errorf("%w: %d", ErrNotAnOption, cardID)
	}
	if question.Disabled[cardID] {
		return entities.QuizOutcome{}, fmt.Errorf("%w: %d", ErrOptionAlreadyTried, cardID)
	}

	q.score.Attempts++
	target := question.Target

	out := entities.QuizOutcome{
		CorrectCardID:  target.ID,
		SelectedCardID: cardID,
	}

	if cardID != target.ID {
		q.record(q.progress.RecordInteraction(ctx, cardID, target.ID), "record interaction")
		q.record(q.progress.MarkAttemptedWrong(ctx, cardID, target.ID), "mark attempted wrong")

		question.Disabled[cardID] = true
		question.Wrong++

		out.State = q.state
		return out, nil
	}

	q.record(q.progress.RecordInteraction(ctx, target.ID), "record interaction")
	if question.Wrong == 0 {
		q.record(q.progress.MarkKnown(ctx, target.ID), "mark known")
		q.score.Score++
	} else {
		q.record(q.progress.MarkUnknown(ctx, target.ID), "mark unknown")
		q.record(q.progress.MarkAttemptedWrong(ctx, target.ID), "mark attempted wrong")
	}

	q.ws.Remove(target.ID)
	q.score.Total++

	out.Correct = true
	unknown := q.unknownCards()
	switch len(unknown) {
	case 0:
		q.state = entities.QuizComplete
	case 1:
		q.state = entities.QuizLastCard
		q.lastCard = unknown[0]
	default:
		q.state = entities.QuizEvaluated
	}

	out.State = q.state
	out.Terminal = q.state.IsTerminal()
	out.LastCard = q.lastCard

	return out, nil
}

// Next presents the next question after a correct answer. In any other
// started state it returns the current step unchanged.
func (q *QuizEngine) Next(ctx context.Context) (entities.QuizStep, error) {
	switch q.state {
	case entities.QuizIdle:
		return q.Current(), ErrQuizNotStarted
	case entities.QuizEvaluated:
		step, err := q.advance(ctx)
		if err != nil {
			q.ws = nil
		}
		return step, err
	default:
		return q.Current(), nil
	}
}

// Current returns the step the engine is in.
func (q *QuizEngine) Current() entities.QuizStep {
	step := entities.QuizStep{State: q.state}
	switch q.state {
	case entities.QuizAwaitingAnswer, entities.QuizEvaluated:
		step.Question = q.question
	case entities.QuizLastCard:
		step.LastCard = q.lastCard
	}
	return step
}

// ResetScore zeroes the quiz counters.
func (q *QuizEngine) ResetScore() {
	q.score = entities.QuizScore{}
}

// SetLanguage changes the translation used for options of later questions.
func (q *QuizEngine) SetLanguage(lang entities.Language) {
	q.cfg.Language = lang
}

// Score returns the counters of the current quiz.
func (q *QuizEngine) Score() entities.QuizScore {
	return q.score
}

// State returns the current state.
func (q *QuizEngine) State() entities.QuizState {
	return q.state
}

// Reset returns the engine to idle. The score of the last quiz is kept.
func (q *QuizEngine) Reset() {
	q.state = entities.QuizIdle
	q.question = nil
	q.lastCard = nil
	q.ws = nil
}

func (q *QuizEngine) advance(ctx context.Context) (entities.QuizStep, error) {
	unknown := q.unknownCards()

	switch {
	case len(unknown) == 0:
		q.state = entities.QuizComplete
		q.question = nil
		return q.Current(), nil
	case len(unknown) == 1:
		q.state = entities.QuizLastCard
		q.question = nil
		q.lastCard = unknown[0]
		return q.Current(), nil
	case q.ws.Len() < q.cfg.MinCards:
		q.state = entities.QuizIdle
		q.question = nil
		return q.Current(), fmt.Errorf("%w: have %d, need %d", ErrInsufficientCards, q.ws.Len(), q.cfg.MinCards)
	}

	target := oldestCard(unknown, q.progress)

	options, err := q.options.Generate(target, q.ws.Cards(), q.cfg.Language)
	if err != nil {
		q.state = entities.QuizIdle
		q.question = nil
		return q.Current(), err
	}

	q.record(q.progress.RecordInteraction(ctx, target.ID), "record interaction")

	q.question = &entities.Question{
		Target:   target,
		Options:  options,
		Disabled: make(map[int]bool),
	}
	q.state = entities.QuizAwaitingAnswer

	return q.Current(), nil
}

// unknownCards returns the cards of the working set not marked known, in order.
func (q *QuizEngine) unknownCards() []*entities.Card {
	var out []*entities.Card
	for _, c := range q.ws.Cards() {
		if !q.progress.IsKnown(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// record logs a failed progress write; the in-memory progress is already updated.
func (q *QuizEngine) record(err error, op string) {
	if err != nil {
		q.logger.Error("failed to persist quiz progress", zap.String("op", op), zap.Error(err))
	}
}

// oldestCard picks the card with the oldest interaction, lowest id on ties.
func oldestCard(cards []*entities.Card, progress ProgressReader) *entities.Card {
	best := cards[0]
	bestTS := progress.LastInteraction(best.ID)
	for _, c := range cards[1:] {
		ts := progress.LastInteraction(c.ID)
		if ts < bestTS || (ts == bestTS && c.ID < best.ID) {
			best, bestTS = c, ts
		}
	}
	return best
}
