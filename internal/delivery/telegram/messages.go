// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
)

// Error messages.
const (
	msgInternalError     = "Something went wrong. Please try again later."
	msgUnknownCommand    = "Unknown command. Send /help to see what I can do."
	msgUnknownTopic      = "Unknown topic. Send /topics to see the list."
	msgNoCards           = "No cards match the current filter. Try /all or pick another topic with /topics."
	msgNotEnoughCards    = "You need at least %d cards to start a quiz."
	msgNotEnoughOptions  = "These cards share the same translation, so a multiple choice question can't be built."
	msgQuizNotActive     = "This question is no longer active. Send /quiz to start a new one."
	msgOptionTried       = "You already tried this one."
	msgResetDone         = "Progress has been reset."
	msgResetCancelled    = "Reset cancelled."
	msgResetConfirmation = "This will erase all your progress. Are you sure?"
	msgUnknownLanguage   = "Usage: /language, /language en or /language ru"
	msgLanguageSet       = "Translations are now shown in %s."
)

const msgHelp = `I help you learn Spanish vocabulary for the DGT driving theory test.

/card – show the current flashcard
/quiz – start a multiple choice quiz
/topics – choose a topic
/categories – choose a word category
/all – clear the filters
/showall – include cards you already know
/shuffle – reshuffle the cards
/progress – show your progress
/reset – reset your progress
/language – switch between English and Russian translations
/help – show this message`

func welcomeText() string {
	var sb strings.Builder
	sb.WriteString(bold("¡Hola!"))
	sb.WriteString("\n\n")
	sb.WriteString(md(msgHelp))
	return sb.String()
}

func languageName(lang entities.Language) string {
	if lang == entities.LanguageRussian {
		return "Russian"
	}
	return "English"
}

// cardText renders one side of a flashcard.
func cardText(c *entities.Card, lang entities.Language, flipped bool, stats entities.Stats) string {
	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf("Card %d of %d", stats.Position, stats.Current)))
	sb.WriteString("\n\n")
	sb.WriteString(bold(c.Word))
	if c.Category != "" {
		sb.WriteString(" ")
		sb.WriteString(italic(c.Category))
	}
	sb.WriteString("\n")

	if flipped {
		sb.WriteString("\n")
		sb.WriteString(md("➡️ " + c.TranslationFor(lang)))
		sb.WriteString("\n")
		if c.Example != "" {
			sb.WriteString("\n")
			sb.WriteString(italic(c.Example))
			sb.WriteString("\n")
		}
	}

	if len(c.Topics) > 0 {
		names := make([]string, 0, len(c.Topics))
		for _, t := range c.Topics {
			names = append(names, entities.TopicName(t))
		}
		sb.WriteString("\n")
		sb.WriteString(md("📚 " + strings.Join(names, ", ")))
	}

	return sb.String()
}

// questionText renders the prompt of a quiz question.
func questionText(q *entities.Question, score entities.QuizScore) string {
	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf("🎯 Score: %d / %d", score.Score, score.Total)))
	sb.WriteString("\n\n")
	sb.WriteString(md("What does "))
	sb.WriteString(bold(q.Target.Word))
	sb.WriteString(md(" mean?"))

	if q.Wrong > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(md("❌ Not quite, try again."))
	}

	return sb.String()
}

// answerText renders the result of a correct answer.
func answerText(target *entities.Card, lang entities.Language, firstTry bool, score entities.QuizScore) string {
	var sb strings.Builder

	if firstTry {
		sb.WriteString(md("✅ Correct!"))
	} else {
		sb.WriteString(md("✅ Correct, but it goes back on the review pile."))
	}
	sb.WriteString("\n\n")
	sb.WriteString(bold(target.Word))
	sb.WriteString(md(" — " + target.TranslationFor(lang)))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("🎯 Score: %d / %d", score.Score, score.Total)))

	return sb.String()
}

// completeText is shown when no unknown cards remain in the working set.
func completeText(sel entities.Selection, score entities.QuizScore) string {
	var sb strings.Builder

	sb.WriteString(bold("🎉 Congratulations!"))
	sb.WriteString("\n\n")
	if d := sel.Describe(); d != "" {
		sb.WriteString(md(fmt.Sprintf("You know all the cards in the %s.", d)))
	} else {
		sb.WriteString(md("You know all the cards."))
	}
	if score.Total > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(md(fmt.Sprintf("Final score: %d / %d", score.Score, score.Total)))
	}

	return sb.String()
}

// lastCardText introduces the single remaining card, reviewed as a flashcard.
func lastCardText() string {
	return md("🏁 Almost done! Only one card is left. Review it as a flashcard:")
}

// statsText renders progress within the current selection.
func statsText(stats entities.Stats, sel entities.Selection, score entities.QuizScore) string {
	var sb strings.Builder

	sb.WriteString(bold("📊 Your progress"))
	sb.WriteString("\n\n")
	if d := sel.Describe(); d != "" {
		sb.WriteString(md("Filter: " + d))
		sb.WriteString("\n\n")
	}

	sb.WriteString(md(progressBar(stats.Known, stats.Total, 20)))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("✅ Known: %d / %d (%.1f%%)", stats.Known, stats.Total, stats.Percentage)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("📖 To learn: %d", stats.Unknown)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🃏 In the deck: %d", stats.Current)))

	if score.Attempts > 0 {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("🎯 Last quiz: %d / %d", score.Score, score.Total)))
	}

	return sb.String()
}

// topicsText lists the topics with their card counts.
func topicsText(counts map[string]int) string {
	var sb strings.Builder

	sb.WriteString(bold("📚 Topics"))
	sb.WriteString("\n")
	for _, t := range entities.AllTopics() {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s (%d)", t.Name, counts[t.ID])))
	}

	return sb.String()
}

// categoriesText lists the categories of the selected topic with their counts.
func categoriesText(counts map[string]int, categories []string) string {
	var sb strings.Builder

	sb.WriteString(bold("🏷 Categories"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("All (%d)", counts[entities.All])))
	for _, c := range categories {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s (%d)", c, counts[c])))
	}

	return sb.String()
}

func progressBar(done, total, width int) string {
	if total <= 0 || width <= 0 {
		return strings.Repeat("░", max(width, 0))
	}
	filled := done * width / total
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
