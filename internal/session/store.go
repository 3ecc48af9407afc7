package session

import (
	"context"
	"time"
)

// Question is a single multiple-choice question as presented to the
// test-taker. SelectedAnswer carries any previously saved answer.
type Question struct {
	ID             string
	Text           string
	Options        []string
	SelectedAnswer *int
}

// AttemptSnapshot is the full server-side state of an attempt at load time.
type AttemptSnapshot struct {
	AttemptID            string
	TestID               string
	TestTitle            string
	DurationMinutes      int
	Instructions         []string
	Questions            []Question
	Answers              map[string]int
	MarkedQuestions      []string
	VisitedQuestions     []string
	CurrentQuestionIndex int
	StartedAt            *time.Time
	SubmittedAt          *time.Time
	Score                *int
	TotalQuestions       int
	Percentage           *float64
}

// Progress is the full-snapshot payload written on every save. Nil fields
// are omitted from the write and keep their server-side value.
type Progress struct {
	Answers              *map[string]int
	MarkedQuestions      *[]string
	VisitedQuestions     *[]string
	CurrentQuestionIndex *int
}

// Result is the outcome of a scored submission.
type Result struct {
	Score          int
	TotalQuestions int
	Percentage     float64
}

// AttemptStore is the persistence boundary of a session. Implementations
// talk to the attempts API; tests substitute in-memory fakes.
//
// Start and Submit must be idempotent: calling them again returns the
// originally stored timestamp or result.
type AttemptStore interface {
	Load(ctx context.Context, attemptID string) (*AttemptSnapshot, error)
	Start(ctx context.Context, attemptID string) (time.Time, error)
	UpdateProgress(ctx context.Context, attemptID string, p Progress) error
	Submit(ctx context.Context, attemptID string) (*Result, error)
}
