package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
)

// buildCardKeyboard builds the flashcard controls.
func buildCardKeyboard(c *entities.Card, flipped bool) tgbotapi.InlineKeyboardMarkup {
	flip := "🔄 Show translation"
	if flipped {
		flip = "🔄 Hide translation"
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(flip, buildCardCallback(cardFlip, c.ID, boolParam(!flipped))),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ I know it", buildCardCallback(cardKnown, c.ID)),
			tgbotapi.NewInlineKeyboardButtonData("❓ Still learning", buildCardCallback(cardUnknown, c.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️", buildCardCallback(cardPrev)),
			tgbotapi.NewInlineKeyboardButtonData("🔀", buildCardCallback(cardShuffle)),
			tgbotapi.NewInlineKeyboardButtonData("▶️", buildCardCallback(cardNext)),
		),
	)
}

// buildQuestionKeyboard builds one button per option; tried options are crossed out.
func buildQuestionKeyboard(q *entities.Question, lang entities.Language) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for _, o := range q.Options {
		text := o.TranslationFor(lang)
		data := buildQuizAnswerCallback(o.ID)
		if q.Disabled[o.ID] {
			text = "❌ " + text
			data = buildQuizTriedCallback()
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(text, data)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizNextKeyboard is shown after a correct answer.
func buildQuizNextKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Next question ▶️", buildQuizNextCallback()),
		),
	)
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
func buildQuizResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New quiz", buildQuizStartCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 My progress", buildProgressCallback()),
		),
	)
}

// buildProgressKeyboard builds keyboard for progress screen.
func buildProgressKeyboard(sel entities.Selection) tgbotapi.InlineKeyboardMarkup {
	showAll := "👁 Include known cards"
	if sel.ShowAllCards {
		showAll = "🙈 Hide known cards"
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", buildProgressCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Start quiz", buildQuizStartCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(showAll, buildShowAllCallback()),
		),
	)
}

// buildTopicsKeyboard builds one button per topic, two per row.
func buildTopicsKeyboard(selected string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(mark("All topics", selected == entities.All), buildTopicCallback(entities.All)),
		),
	}

	var row []tgbotapi.InlineKeyboardButton
	for _, t := range entities.AllTopics() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(mark(t.Name, selected == t.ID), buildTopicCallback(t.ID)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildCategoriesKeyboard builds one button per category of the selected topic.
func buildCategoriesKeyboard(categories []string, selected string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(mark("All categories", selected == entities.All), buildCategoryCallback(entities.All)),
		),
	}
	for _, c := range categories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(mark(c, selected == c), buildCategoryCallback(c)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResetKeyboard asks to confirm a full reset.
func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Yes, reset", buildResetConfirmCallback()),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", buildResetCancelCallback()),
		),
	)
}

func mark(label string, selected bool) string {
	if selected {
		return "✅ " + label
	}
	return label
}

func boolParam(b bool) int {
	if b {
		return 1
	}
	return 0
}
