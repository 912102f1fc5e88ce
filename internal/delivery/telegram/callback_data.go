package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionCard     = "card"
	actionQuiz     = "quiz"
	actionTopic    = "topic"
	actionCategory = "category"
	actionShowAll  = "showall"
	actionReset    = "reset"
	actionProgress = "progress"
)

// Card sub-actions.
const (
	cardFlip    = "flip"
	cardKnown   = "known"
	cardUnknown = "unknown"
	cardNext    = "next"
	cardPrev    = "prev"
	cardShuffle = "shuffle"
)

// Quiz sub-actions.
const (
	quizStart  = "start"
	quizAnswer = "answer"
	quizNext   = "next"
	quizTried  = "tried"
)

const (
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or "".
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParam parses the i-th parameter as a card id.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func buildCardCallback(sub string, cardID ...int) string {
	params := []string{sub}
	for _, id := range cardID {
		params = append(params, strconv.Itoa(id))
	}
	return callbackData{Action: actionCard, Params: params}.encode()
}

func buildQuizStartCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizStart}}.encode()
}

func buildQuizNextCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizNext}}.encode()
}

// buildQuizAnswerCallback carries the selected card id.
func buildQuizAnswerCallback(cardID int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizAnswer, strconv.Itoa(cardID)},
	}.encode()
}

func buildQuizTriedCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizTried}}.encode()
}

func buildTopicCallback(topic string) string {
	return callbackData{Action: actionTopic, Params: []string{topic}}.encode()
}

func buildCategoryCallback(category string) string {
	return callbackData{Action: actionCategory, Params: []string{category}}.encode()
}

func buildShowAllCallback() string {
	return actionShowAll
}

func buildProgressCallback() string {
	return actionProgress
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}
