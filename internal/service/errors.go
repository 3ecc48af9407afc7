package service

import "errors"

var (
	ErrTestNotFound       = errors.New("test not found")
	ErrAttemptNotFound    = errors.New("attempt not found")
	ErrAttemptSubmitted   = errors.New("attempt already submitted")
	ErrAttemptNotStarted  = errors.New("attempt not started")
	ErrNotPurchased       = errors.New("test not purchased")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIndexOutOfRange    = errors.New("question index out of range")
)
