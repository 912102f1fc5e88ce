package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/dgt-vocab-bot/internal/service"
)

func (h *Handler) startHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s, err := h.sessions.Session(ctx, userID)
		if err != nil {
			return err
		}

		h.send(newMessage(chatID, welcomeText()))
		h.sendView(chatID, renderCard(s, false))
		return nil
	}
}

func (h *Handler) helpHandler() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		h.send(newMessage(chatID, md(msgHelp)))
		return nil
	}
}

func (h *Handler) cardHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s, err := h.sessions.Session(ctx, userID)
		if err != nil {
			return err
		}

		h.sendView(chatID, renderCard(s, false))
		return nil
	}
}

func (h *Handler) quizHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s, err := h.sessions.Session(ctx, userID)
		if err != nil {
			return err
		}

		step, err := s.StartQuiz(ctx)
		if err != nil {
			return err
		}

		h.sendView(chatID, renderQuizStep(s, step))
		return nil
	}
}

func (h *Handler) topicsHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s, err := h.sessions.Session(ctx, userID)
		if err != nil {
			return err
		}

		h.sendView(chatID, renderTopics(s))
		return nil
	}
}

// topicHandler handles "/topic topic03" and "/topic all".
func (h *Handler) topicHandler(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		topic := strings.TrimSpace(args)
		if topic == "" {
			return h.topicsHandler(userID)(ctx, chatID)
		}
		if topic != entities.All && !entities.IsKnownTopic(topic) {
			h.send(newMessage(chatID, md(msgUnknownTopic)))
			return nil
		}

		s, err := h.sessions.Session(ctx, userID)
		if err != nil {
			return err
		}

		sel := s.Selection()
		sel.Topic = topic
		sel.Category = entities.All
		s.SetSelection(sel)

		h.sendView(chatID, renderCard(s, false))
		return nil
	}
}

func (h *Handler) categoriesHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s, err := h.sessions.Session(ctx, userID)
		if err != nil {
			return err
		}

		h.sendView(chatID, renderCategories(s))
		return nil
	}
}

func (h *Handler) categoryHandler(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		category := strings.TrimSpace(args)
		if category == "" {
			return h.categoriesHandler(userID)(ctx, chatID)
		}

		s, err := h.sessions.Session(ctx, userID)
		if err != nil {
			return err
		}

		sel := s.Selection()
		sel.Category = category
		s.SetSelection(sel)

		h.sendView(chatID, renderCard(s, false))
		return nil
	}
}

func (h *Handler) clearFilterHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s, err := h.sessions.Session(ctx, userID)
		if err != nil {
			return err
		}

		sel := entities.DefaultSelection()
		sel.ShowAllCards = s.Selection().ShowAllCards
		s.SetSelection(sel)

		h.sendView(chatID, renderCard(s, false))
		return nil
	}
}

func (h *Handler) showAllHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s, err := h.sessions.Session(ctx, userID)
		if err != nil {
			return err
		}

		toggleShowAll(s)
		h.sendView(chatID, renderCard(s, false))
		return nil
	}
}

func (h *Handler) shuffleHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s, err := h.sessions.Session(ctx, userID)
		if err != nil {
			return err
		}

		s.Reshuffle()
		h.sendView(chatID, renderCard(s, false))
		return nil
	}
}

func (h *Handler) progressHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s, err := h.sessions.Session(ctx, userID)
		if err != nil {
			return err
		}

		h.sendView(chatID, renderProgress(s))
		return nil
	}
}

// resetHandler asks for confirmation before a full reset. With card ids as
// arguments it clears only their review history.
func (h *Handler) resetHandler(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		ids, err := parseIDs(args)
		if err != nil {
			h.send(newMessage(chatID, md("Usage: /reset or /reset 3 17 42")))
			return nil
		}

		if len(ids) == 0 {
			h.sendView(chatID, withKeyboard(md(msgResetConfirmation), buildResetKeyboard()))
			return nil
		}

		s, err := h.sessions.Session(ctx, userID)
		if err != nil {
			return err
		}
		if err := s.ResetProgress(ctx, ids); err != nil {
			return err
		}

		h.send(newMessage(chatID, md(fmt.Sprintf("Review history cleared for %d card(s).", len(ids)))))
		return nil
	}
}

// languageHandler toggles the translation language, or sets the one named
// in args.
func (h *Handler) languageHandler(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s, err := h.sessions.Session(ctx, userID)
		if err != nil {
			return err
		}

		lang := service.Toggle(s.Language())
		if arg := strings.ToLower(strings.TrimSpace(args)); arg != "" {
			if lang, err = service.ParseLanguage(arg); err != nil {
				return err
			}
		}

		if err := s.SetLanguage(ctx, lang); err != nil {
			return err
		}

		h.send(newMessage(chatID, md(fmt.Sprintf(msgLanguageSet, languageName(lang)))))
		h.sendView(chatID, renderCard(s, false))
		return nil
	}
}

func toggleShowAll(s *service.Session) {
	sel := s.Selection()
	sel.ShowAllCards = !sel.ShowAllCards
	s.SetSelection(sel)
}

// parseIDs parses whitespace separated non-negative card ids.
func parseIDs(args string) ([]int, error) {
	fields := strings.Fields(args)
	ids := make([]int, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.Atoi(f)
		if err != nil || id < 0 {
			return nil, fmt.Errorf("invalid card id %q", f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
