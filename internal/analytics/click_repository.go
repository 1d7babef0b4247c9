package analytics

import (
	"context"

	"go-shortlink/internal/domain"
)

// ClickRepository is the durable, queryable click log consumed by the
// analytics service. Inserts are append-only; there is no dedup key, so
// at-least-once delivery upstream may produce duplicate records.
type ClickRepository interface {
	InsertClick(ctx context.Context, rec *domain.ClickRecord) error
	CountByCode(ctx context.Context, code string) (int64, error)
	FindRecentByCode(ctx context.Context, code string, limit int) ([]domain.ClickRecord, error)
}

// CountryResolver resolves an IP address to a country code, degrading to
// a sentinel when resolution is unavailable.
type CountryResolver interface {
	ResolveCountry(ip string) string
}
