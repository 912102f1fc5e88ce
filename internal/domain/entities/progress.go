package entities

// ProgressSnapshot is a point-in-time copy of the learner's progress.
type ProgressSnapshot struct {
	Known           []int         `json:"known"`            // ids marked known, ascending
	AttemptedWrong  []int         `json:"attempted_wrong"`  // ids answered wrongly in a quiz, ascending
	LastInteraction map[int]int64 `json:"last_interaction"` // card id -> epoch milliseconds
}

// Stats summarises progress for the active selection.
type Stats struct {
	Total      int     // cards matching the filter
	Known      int     // known cards within the filter
	Unknown    int     // Total - Known
	Current    int     // cards in the working set
	Position   int     // 1-based cursor position, 0 when the working set is empty
	Percentage float64 // Known / Total * 100
}

// NewStats computes the derived fields of Stats.
func NewStats(total, known, current, cursor int) Stats {
	s := Stats{
		Total:   total,
		Known:   known,
		Unknown: total - known,
		Current: current,
	}
	if current > 0 {
		s.Position = min(cursor+1, current)
	}
	if total > 0 {
		s.Percentage = float64(known) / float64(total) * 100
	}
	return s
}
