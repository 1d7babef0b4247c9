package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"go-shortlink/internal/domain"
)

// ClickRepository is the SQLite-backed, append-only click log. Records are
// never updated or deleted by the pipeline.
type ClickRepository struct {
	db *sql.DB
}

// NewClickRepository creates a new SQLite-backed click repository
func NewClickRepository(db *sql.DB) *ClickRepository {
	return &ClickRepository{db: db}
}

// InsertClick writes one click record. There is no dedup key: a
// redelivered event becomes an additional row.
func (r *ClickRepository) InsertClick(ctx context.Context, rec *domain.ClickRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clicks (
			click_id, short_code, clicked_at, user_agent, ip,
			referer, device_type, traffic_source, country_code
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ClickID, rec.Code, rec.ClickedAt, rec.UserAgent, rec.IP,
		rec.Referer, rec.DeviceType, rec.TrafficSource, rec.CountryCode,
	)
	if err != nil {
		return fmt.Errorf("failed to insert click: %w", err)
	}
	return nil
}

// CountByCode returns the total number of click records for a short code.
// Counting happens in the store; records are never materialized.
func (r *ClickRepository) CountByCode(ctx context.Context, code string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM clicks WHERE short_code = ?`,
		code,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count clicks: %w", err)
	}
	return count, nil
}

// FindRecentByCode returns up to limit click records for a code, newest
// first. Timestamp ties fall back to insertion order.
func (r *ClickRepository) FindRecentByCode(ctx context.Context, code string, limit int) ([]domain.ClickRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT click_id, short_code, clicked_at, user_agent, ip,
			referer, device_type, traffic_source, country_code
		FROM clicks
		WHERE short_code = ?
		ORDER BY clicked_at DESC, rowid DESC
		LIMIT ?`,
		code, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query clicks: %w", err)
	}
	defer rows.Close()

	var records []domain.ClickRecord
	for rows.Next() {
		var rec domain.ClickRecord
		if err := rows.Scan(
			&rec.ClickID, &rec.Code, &rec.ClickedAt, &rec.UserAgent, &rec.IP,
			&rec.Referer, &rec.DeviceType, &rec.TrafficSource, &rec.CountryCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan click: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clicks: %w", err)
	}

	return records, nil
}
