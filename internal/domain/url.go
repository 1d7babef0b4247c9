package domain

import "time"

// URL is the durable mapping from a short code to its destination.
// Created once at shorten time and never mutated afterwards.
type URL struct {
	ID          int64     `json:"id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
}
