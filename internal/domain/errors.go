package domain

import "errors"

var (
	// ErrURLNotFound is returned when no URL exists for a short code.
	ErrURLNotFound = errors.New("url not found")

	// ErrInvalidURL is returned for a destination URL that fails validation.
	ErrInvalidURL = errors.New("invalid url")

	// ErrInvalidCode is returned for a short code that fails the charset
	// or length constraints.
	ErrInvalidCode = errors.New("invalid short code")

	// ErrCodeTaken is returned by the URL repository when the conditional
	// write loses to an existing record for the same code.
	ErrCodeTaken = errors.New("short code already taken")

	// ErrCodeGenerationExhausted is returned when code generation keeps
	// colliding past the retry cap.
	ErrCodeGenerationExhausted = errors.New("short code generation failed after max retries")

	// ErrMalformedEvent is returned for click payloads that cannot be
	// parsed or are missing required fields. Never retried.
	ErrMalformedEvent = errors.New("malformed click event")
)
