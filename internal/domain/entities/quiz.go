package entities

// QuizState is the state of the quiz state machine.
type QuizState string

const (
	QuizIdle           QuizState = "idle"            // no quiz running
	QuizAwaitingAnswer QuizState = "awaiting_answer" // a question is presented
	QuizEvaluated      QuizState = "evaluated"       // the question was answered correctly
	QuizComplete       QuizState = "complete"        // no unknown cards remain
	QuizLastCard       QuizState = "last_card"       // one unknown card remains, review it as a flashcard
)

// IsTerminal reports whether the quiz cannot present further questions.
func (s QuizState) IsTerminal() bool {
	return s == QuizComplete || s == QuizLastCard
}

// Question is a single multiple choice question.
type Question struct {
	Target   *Card        // card whose word is asked
	Options  []*Card      // shuffled options, exactly one has Target.ID
	Disabled map[int]bool // options already tried and answered wrongly
	Wrong    int          // wrong attempts on this question
}

// HasOption reports whether a card id is one of the presented options.
func (q *Question) HasOption(id int) bool {
	for _, o := range q.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}

// QuizStep is what the presentation layer shows after a quiz transition.
type QuizStep struct {
	State    QuizState
	Question *Question // set in awaiting_answer
	LastCard *Card     // set in last_card
}

// QuizScore holds the per-session counters. It is reset on every quiz start.
type QuizScore struct {
	Score    int // questions answered correctly on the first attempt
	Total    int // questions resolved
	Attempts int // options selected, right or wrong
}

// QuizOutcome is the result of answering a question.
type QuizOutcome struct {
	Correct        bool
	CorrectCardID  int
	SelectedCardID int
	Terminal       bool      // no further question will follow
	State          QuizState // state after the answer
	LastCard       *Card     // set when State is last_card
}
