package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/dgt-vocab-bot/internal/service"
)

// callbackResult is what a callback handler wants shown: an edit of the
// pressed message and an optional toast.
type callbackResult struct {
	view  *view
	toast string
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	res, err := h.dispatchCallback(ctx, cb.From.ID, data)
	if err != nil {
		if text, ok := h.userMessage(err); ok {
			res.toast = text
		} else {
			h.logger.Error("callback error",
				zap.Int64("chat_id", chatID),
				zap.Int64("user_id", cb.From.ID),
				zap.String("data", cb.Data),
				zap.Error(err),
			)
			res.toast = msgInternalError
		}
	}

	if res.view != nil {
		h.send(newEdit(chatID, cb.Message.MessageID, res.view.text, res.view.kb))
	}

	// Remove the user's "clock".
	answer := tgbotapi.NewCallback(cb.ID, res.toast)
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}

func (h *Handler) dispatchCallback(ctx context.Context, userID int64, data callbackData) (callbackResult, error) {
	s, err := h.sessions.Session(ctx, userID)
	if err != nil {
		return callbackResult{}, err
	}

	switch data.Action {
	case actionCard:
		return h.handleCardCallback(ctx, s, data)
	case actionQuiz:
		return h.handleQuizCallback(ctx, s, data)
	case actionTopic:
		return h.handleTopicCallback(s, data)
	case actionCategory:
		sel := s.Selection()
		sel.Category = data.param(0)
		s.SetSelection(sel)
		return show(renderCard(s, false)), nil
	case actionShowAll:
		toggleShowAll(s)
		return show(renderProgress(s)), nil
	case actionProgress:
		return show(renderProgress(s)), nil
	case actionReset:
		return h.handleResetCallback(ctx, s, data)
	default:
		h.logger.Debug("unknown callback", zap.String("data", data.Raw))
		return callbackResult{}, nil
	}
}

func (h *Handler) handleCardCallback(ctx context.Context, s *service.Session, data callbackData) (callbackResult, error) {
	switch data.param(0) {
	case cardFlip:
		id, ok := data.intParam(1)
		if !ok {
			return callbackResult{}, nil
		}
		flipped := data.param(2) == "1"
		if flipped {
			if _, err := s.ViewCardByID(ctx, id); err != nil {
				return callbackResult{}, err
			}
		}
		return show(renderCardByID(s, id, flipped)), nil

	case cardKnown, cardUnknown:
		id, ok := data.intParam(1)
		if !ok {
			return callbackResult{}, nil
		}

		var err error
		if data.param(0) == cardKnown {
			err = s.MarkKnown(ctx, id)
		} else {
			err = s.MarkUnknown(ctx, id)
		}
		if err != nil {
			return callbackResult{}, err
		}

		res := show(renderCard(s, false))
		if data.param(0) == cardKnown {
			res.toast = "✅ Marked as known"
		} else {
			res.toast = "📖 Keep practising"
		}
		return res, nil

	case cardNext:
		if _, err := s.AdvanceCursor(); err != nil {
			return callbackResult{}, err
		}
		return show(renderCard(s, false)), nil

	case cardPrev:
		if _, err := s.PreviousCard(); err != nil {
			return callbackResult{}, err
		}
		return show(renderCard(s, false)), nil

	case cardShuffle:
		s.Reshuffle()
		res := show(renderCard(s, false))
		res.toast = "🔀 Shuffled"
		return res, nil

	default:
		return callbackResult{}, nil
	}
}

func (h *Handler) handleQuizCallback(ctx context.Context, s *service.Session, data callbackData) (callbackResult, error) {
	switch data.param(0) {
	case quizStart:
		step, err := s.StartQuiz(ctx)
		if err != nil {
			return callbackResult{}, err
		}
		return show(renderQuizStep(s, step)), nil

	case quizAnswer:
		id, ok := data.intParam(1)
		if !ok {
			return callbackResult{}, nil
		}

		step := s.QuizStep()
		if step.State != entities.QuizAwaitingAnswer {
			return callbackResult{}, service.ErrNoActiveQuestion
		}

		out, err := s.AnswerQuiz(ctx, id)
		if err != nil {
			return callbackResult{}, err
		}

		res := show(renderOutcome(s, step.Question, out))
		if !out.Correct {
			res.toast = "❌ Wrong"
		}
		return res, nil

	case quizNext:
		step, err := s.NextQuestion(ctx)
		if err != nil {
			return callbackResult{}, err
		}
		return show(renderQuizStep(s, step)), nil

	case quizTried:
		return callbackResult{toast: msgOptionTried}, nil

	default:
		return callbackResult{}, nil
	}
}

func (h *Handler) handleTopicCallback(s *service.Session, data callbackData) (callbackResult, error) {
	topic := data.param(0)
	if topic != entities.All && !entities.IsKnownTopic(topic) {
		return callbackResult{toast: msgUnknownTopic}, nil
	}

	sel := s.Selection()
	sel.Topic = topic
	sel.Category = entities.All
	s.SetSelection(sel)

	return show(renderCard(s, false)), nil
}

func (h *Handler) handleResetCallback(ctx context.Context, s *service.Session, data callbackData) (callbackResult, error) {
	switch data.param(0) {
	case resetConfirm:
		if err := s.ResetProgress(ctx, nil); err != nil {
			return callbackResult{}, err
		}
		return callbackResult{view: &view{text: md(msgResetDone)}, toast: msgResetDone}, nil
	case resetCancel:
		return callbackResult{view: &view{text: md(msgResetCancelled)}}, nil
	default:
		return callbackResult{}, nil
	}
}

func show(v view) callbackResult {
	return callbackResult{view: &v}
}
