package domain

import "errors"

var (
	// ErrContestantNotFound is returned when a contestant ID is unknown to the store.
	ErrContestantNotFound = errors.New("contestant not found")
	// ErrNoQuestions indicates a session was requested for a contestant without questions.
	ErrNoQuestions = errors.New("contestant has no questions")
	// ErrInvalidContestant indicates a create/import payload failed schema validation.
	ErrInvalidContestant = errors.New("invalid contestant")
	// ErrInvalidShareCode indicates a share code could not be decoded into a contestant.
	ErrInvalidShareCode = errors.New("invalid share code")
	// ErrShareCodeNotFound is returned when a short lookup code is unknown or expired.
	ErrShareCodeNotFound = errors.New("share code not found")
)
