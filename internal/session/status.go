package session

// QuestionStatus is derived presentation state for one question. It is never
// stored; it is recomputed from the answers map, the marked set and the
// visited set. A question can be answered and marked at the same time.
type QuestionStatus string

const (
	StatusNotVisited     QuestionStatus = "not-visited"
	StatusNotAnswered    QuestionStatus = "not-answered"
	StatusAnswered       QuestionStatus = "answered"
	StatusMarked         QuestionStatus = "marked"
	StatusMarkedAnswered QuestionStatus = "marked-answered"
)

// Stats summarizes question statuses for the palette footer. Unanswered
// counts every question without an answer, visited or not.
type Stats struct {
	Answered   int
	Unanswered int
	Marked     int
	NotVisited int
}

func deriveStatus(questionID string, answers map[string]int, marked, visited map[string]bool) QuestionStatus {
	_, answered := answers[questionID]
	switch {
	case marked[questionID] && answered:
		return StatusMarkedAnswered
	case marked[questionID]:
		return StatusMarked
	case answered:
		return StatusAnswered
	case visited[questionID]:
		return StatusNotAnswered
	default:
		return StatusNotVisited
	}
}
