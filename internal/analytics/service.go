package analytics

import (
	"context"
	"fmt"

	"go-shortlink/internal/domain"
	"go-shortlink/internal/enrichment"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RecentClicksLimit caps the recent-clicks view returned by GetStats.
const RecentClicksLimit = 10

// Stats is the read-side view for one short code. The two reads behind it
// are independent, so total and recent may be momentarily inconsistent
// under concurrent writes.
type Stats struct {
	Code         string               `json:"code"`
	TotalClicks  int64                `json:"total_clicks"`
	RecentClicks []domain.ClickRecord `json:"recent_clicks"`
}

// Service owns click persistence and the stats read path.
type Service struct {
	repo ClickRepository
	geo  CountryResolver
}

// NewService creates a new analytics service.
func NewService(repo ClickRepository, geo CountryResolver) *Service {
	return &Service{repo: repo, geo: geo}
}

// RecordClick enriches and persists one click event. The click id is a
// fresh UUIDv7 assigned here, at persistence time: a redelivered event
// gets a new id and becomes an additional row.
func (s *Service) RecordClick(ctx context.Context, event domain.ClickEvent) (*domain.ClickRecord, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate click id: %w", err)
	}

	rec := &domain.ClickRecord{
		ClickID:       id.String(),
		Code:          event.Code,
		ClickedAt:     event.Timestamp,
		UserAgent:     event.UserAgent,
		IP:            event.IP,
		Referer:       event.Referer,
		DeviceType:    enrichment.DetectDevice(event.UserAgent),
		TrafficSource: enrichment.ClassifyTrafficSource(event.Referer),
		CountryCode:   s.geo.ResolveCountry(event.IP),
	}

	if err := s.repo.InsertClick(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetStats composes the total count and the recent clicks for a code as
// two concurrent, independent reads. No transaction spans them.
func (s *Service) GetStats(ctx context.Context, code string) (*Stats, error) {
	var (
		total  int64
		recent []domain.ClickRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.CountByCode(gctx, code)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.repo.FindRecentByCode(gctx, code, RecentClicksLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if recent == nil {
		recent = []domain.ClickRecord{}
	}

	return &Stats{
		Code:         code,
		TotalClicks:  total,
		RecentClicks: recent,
	}, nil
}
