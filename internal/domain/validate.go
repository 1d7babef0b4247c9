package domain

import (
	"net/url"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	// MaxCodeLength bounds path parameters before any storage lookup.
	MaxCodeLength = 20

	// MaxURLLength bounds destination URLs accepted at create time.
	MaxURLLength = 2048
)

var shortCodeRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateShortCode checks the charset and length constraints of a short
// code. It is called before any storage access.
func ValidateShortCode(code string) error {
	if err := validation.Validate(code,
		validation.Required,
		validation.Length(1, MaxCodeLength),
		validation.Match(shortCodeRegex),
	); err != nil {
		return ErrInvalidCode
	}
	return nil
}

// ValidateOriginalURL checks that a destination URL is syntactically
// valid, within the length bound, and scheme-limited to http/https.
func ValidateOriginalURL(rawURL string) error {
	if err := validation.Validate(rawURL,
		validation.Required,
		validation.Length(1, MaxURLLength),
		is.URL,
	); err != nil {
		return ErrInvalidURL
	}

	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return ErrInvalidURL
	}
	if !IsRedirectableScheme(parsed.Scheme) {
		return ErrInvalidURL
	}
	if parsed.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

// IsRedirectableScheme reports whether a stored destination may be
// surfaced as a redirect target. Checked again on the redirect path even
// though creation already validated it, so a write path that bypasses
// validation can never turn a redirect into a script-invoking URL.
func IsRedirectableScheme(scheme string) bool {
	switch strings.ToLower(scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}

// Validate checks the required fields of a click event after decoding.
// Events failing this check are permanently dropped by the tracker.
func (e ClickEvent) Validate() error {
	if err := validation.ValidateStruct(&e,
		validation.Field(&e.Code, validation.Required, validation.Length(1, MaxCodeLength), validation.Match(shortCodeRegex)),
		validation.Field(&e.Timestamp, validation.Required, validation.Min(1)),
		validation.Field(&e.UserAgent, validation.Required),
		validation.Field(&e.IP, validation.Required),
	); err != nil {
		return ErrMalformedEvent
	}
	return nil
}
