package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-shortlink/internal/domain"
)

// URLRepository is the SQLite-backed store for short code mappings.
type URLRepository struct {
	db *sql.DB
}

// NewURLRepository creates a new SQLite-backed URL repository
func NewURLRepository(db *sql.DB) *URLRepository {
	return &URLRepository{db: db}
}

// Save performs the conditional write for a new URL record. The UNIQUE
// constraint on short_code is the uniqueness guarantee; losing to an
// existing record maps to domain.ErrCodeTaken so callers can regenerate,
// while infrastructure failures pass through unchanged.
func (r *URLRepository) Save(ctx context.Context, shortCode, originalURL string) (*domain.URL, error) {
	createdAt := time.Now().UTC()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO urls (short_code, original_url, created_at) VALUES (?, ?, ?)`,
		shortCode, originalURL, createdAt,
	)
	if err != nil {
		// modernc.org/sqlite reports constraint violations in the error text
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, domain.ErrCodeTaken
		}
		return nil, fmt.Errorf("failed to save url: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}

	return &domain.URL{
		ID:          id,
		ShortCode:   shortCode,
		OriginalURL: originalURL,
		CreatedAt:   createdAt,
	}, nil
}

// FindByShortCode retrieves a URL by its short code
func (r *URLRepository) FindByShortCode(ctx context.Context, code string) (*domain.URL, error) {
	var u domain.URL
	err := r.db.QueryRowContext(ctx,
		`SELECT id, short_code, original_url, created_at FROM urls WHERE short_code = ?`,
		code,
	).Scan(&u.ID, &u.ShortCode, &u.OriginalURL, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrURLNotFound
		}
		return nil, fmt.Errorf("failed to find url: %w", err)
	}

	return &u, nil
}
