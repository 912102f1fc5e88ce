package telegram

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/dgt-vocab-bot/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling reports expected domain errors to the user and logs the rest.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		if text, ok := h.userMessage(err); ok {
			h.send(newMessage(chatID, md(text)))
			return nil
		}

		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return nil
	}
}

// userMessage maps errors the learner can act on to a message.
func (h *Handler) userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrInsufficientCards):
		return fmt.Sprintf(msgNotEnoughCards, h.minCards), true
	case errors.Is(err, service.ErrInsufficientOptions):
		return msgNotEnoughOptions, true
	case errors.Is(err, service.ErrNoCards):
		return msgNoCards, true
	case errors.Is(err, service.ErrNoActiveQuestion), errors.Is(err, service.ErrQuizNotStarted), errors.Is(err, service.ErrNotAnOption):
		return msgQuizNotActive, true
	case errors.Is(err, service.ErrOptionAlreadyTried):
		return msgOptionTried, true
	case errors.Is(err, service.ErrUnsupportedLanguage):
		return msgUnknownLanguage, true
	default:
		return "", false
	}
}
