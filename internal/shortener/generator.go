package shortener

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// codeAlphabet is URL-safe and collision resistant: 64 characters, all of
// which satisfy the short code charset [A-Za-z0-9_-].
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

// DefaultCodeLength is the length used for generated short codes.
const DefaultCodeLength = 7

// GenerateCode returns a random URL-safe code of the given length. It does
// not guarantee uniqueness; the repository's conditional write does.
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		length = DefaultCodeLength
	}
	return gonanoid.Generate(codeAlphabet, length)
}
