package telegram

import (
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/dgt-vocab-bot/internal/service"
)

// view is a rendered message: MarkdownV2 text and an optional keyboard.
type view struct {
	text string
	kb   *tgbotapi.InlineKeyboardMarkup
}

func withKeyboard(text string, kb tgbotapi.InlineKeyboardMarkup) view {
	return view{text: text, kb: &kb}
}

// renderCard renders the card under the cursor, or the empty-deck message.
func renderCard(s *service.Session, flipped bool) view {
	card, err := s.CurrentCard()
	if errors.Is(err, service.ErrNoCards) {
		return renderEmptyDeck(s)
	}
	return renderCardFace(s, card, flipped)
}

// renderCardByID renders a card of the working set, falling back to the current card.
func renderCardByID(s *service.Session, id int, flipped bool) view {
	for _, c := range s.WorkingSet() {
		if c.ID == id {
			return renderCardFace(s, c, flipped)
		}
	}
	return renderCard(s, flipped)
}

func renderCardFace(s *service.Session, card *entities.Card, flipped bool) view {
	return withKeyboard(
		cardText(card, s.Language(), flipped, s.Stats()),
		buildCardKeyboard(card, flipped),
	)
}

func renderEmptyDeck(s *service.Session) view {
	stats := s.Stats()
	if stats.Total > 0 && stats.Unknown == 0 {
		return withKeyboard(completeText(s.Selection(), s.QuizScore()), buildProgressKeyboard(s.Selection()))
	}
	return view{text: md(msgNoCards)}
}

// renderQuizStep renders the state the quiz engine is in.
func renderQuizStep(s *service.Session, step entities.QuizStep) view {
	switch step.State {
	case entities.QuizAwaitingAnswer:
		return withKeyboard(
			questionText(step.Question, s.QuizScore()),
			buildQuestionKeyboard(step.Question, s.Language()),
		)

	case entities.QuizComplete:
		return withKeyboard(completeText(s.Selection(), s.QuizScore()), buildQuizResultKeyboard())

	case entities.QuizLastCard:
		card := cardText(step.LastCard, s.Language(), false, s.Stats())
		return withKeyboard(lastCardText()+"\n\n"+card, buildCardKeyboard(step.LastCard, false))

	default:
		return renderCard(s, false)
	}
}

// renderOutcome renders the result of answering question.
func renderOutcome(s *service.Session, q *entities.Question, out entities.QuizOutcome) view {
	if !out.Correct {
		return renderQuizStep(s, s.QuizStep())
	}

	text := answerText(q.Target, s.Language(), q.Wrong == 0, s.QuizScore())
	if out.Terminal {
		next := renderQuizStep(s, entities.QuizStep{State: out.State, LastCard: out.LastCard})
		return view{text: text + "\n\n" + next.text, kb: next.kb}
	}
	return withKeyboard(text, buildQuizNextKeyboard())
}

func renderProgress(s *service.Session) view {
	return withKeyboard(
		statsText(s.Stats(), s.Selection(), s.QuizScore()),
		buildProgressKeyboard(s.Selection()),
	)
}

func renderTopics(s *service.Session) view {
	return withKeyboard(topicsText(s.TopicCounts()), buildTopicsKeyboard(s.Selection().Topic))
}

func renderCategories(s *service.Session) view {
	categories := s.AvailableCategories()
	return withKeyboard(
		categoriesText(s.CategoryCounts(), categories),
		buildCategoriesKeyboard(categories, s.Selection().Category),
	)
}
