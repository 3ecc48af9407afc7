package session

import "errors"

var (
	// ErrNotFound means the attempt does not exist or belongs to another user.
	ErrNotFound = errors.New("attempt not found")
	// ErrUnauthorized means the store rejected the caller's credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrAlreadySubmitted is returned by writes against a finished attempt.
	ErrAlreadySubmitted = errors.New("attempt already submitted")
	// ErrNotStarted is returned when submitting before the timer was started.
	ErrNotStarted = errors.New("attempt not started")
	// ErrWrongPhase is returned by operations invalid in the current phase.
	ErrWrongPhase = errors.New("operation not valid in current phase")
)
