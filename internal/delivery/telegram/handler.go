package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot      *tgbotapi.BotAPI
	logger   *zap.Logger
	sessions SessionProvider
	minCards int
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	sessions SessionProvider,
	minCards int,
) *Handler {
	return &Handler{
		bot:      bot,
		logger:   logger,
		sessions: sessions,
		minCards: minCards,
	}
}

// Commands returns the command list shown in the Telegram menu.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "card", Description: "Show the current flashcard"},
		{Command: "quiz", Description: "Start a quiz"},
		{Command: "topics", Description: "Choose a topic"},
		{Command: "categories", Description: "Choose a category"},
		{Command: "all", Description: "Clear the filters"},
		{Command: "showall", Description: "Include known cards"},
		{Command: "shuffle", Description: "Reshuffle the cards"},
		{Command: "progress", Description: "Show progress"},
		{Command: "language", Description: "Switch English / Russian translations"},
		{Command: "reset", Description: "Reset progress"},
		{Command: "help", Description: "Help"},
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	if !update.Message.IsCommand() {
		h.send(newMessage(chatID, md(msgUnknownCommand)))
		return
	}

	args := update.Message.CommandArguments()

	var fn HandlerFunc
	switch update.Message.Command() {
	case "start":
		fn = h.startHandler(userID)
	case "help":
		fn = h.helpHandler()
	case "card":
		fn = h.cardHandler(userID)
	case "quiz":
		fn = h.quizHandler(userID)
	case "topics":
		fn = h.topicsHandler(userID)
	case "topic":
		fn = h.topicHandler(userID, args)
	case "categories":
		fn = h.categoriesHandler(userID)
	case "category":
		fn = h.categoryHandler(userID, args)
	case "all":
		fn = h.clearFilterHandler(userID)
	case "showall":
		fn = h.showAllHandler(userID)
	case "shuffle":
		fn = h.shuffleHandler(userID)
	case "progress":
		fn = h.progressHandler(userID)
	case "reset":
		fn = h.resetHandler(userID, args)
	case "language":
		fn = h.languageHandler(userID, args)
	default:
		h.send(newMessage(chatID, md(msgUnknownCommand)))
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) sendView(chatID int64, v view) {
	msg := newMessage(chatID, v.text)
	if v.kb != nil {
		msg.ReplyMarkup = *v.kb
	}
	h.send(msg)
}

func (h *Handler) sendError(chatID int64, err string) {
	h.send(newMessage(chatID, md(err)))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
