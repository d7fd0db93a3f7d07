package ai

import "errors"

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("ai config")

	// ErrNoJSON is returned when no parse strategy yields a decodable value.
	ErrNoJSON = errors.New("no decodable JSON in model response")

	// ErrEmptyResponse is returned when the model produced no choices.
	ErrEmptyResponse = errors.New("empty model response")

	// ErrInvalidMaxAttempts is returned when a retry loop is given fewer than one attempt.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
