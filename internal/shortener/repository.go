package shortener

import (
	"context"

	"go-shortlink/internal/domain"
)

// URLRepository is the store consumed by the shortener. Save must be a
// conditional write: it returns domain.ErrCodeTaken when a record for the
// code already exists instead of overwriting it.
type URLRepository interface {
	Save(ctx context.Context, shortCode, originalURL string) (*domain.URL, error)
	FindByShortCode(ctx context.Context, code string) (*domain.URL, error)
}
