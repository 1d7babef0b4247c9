package shortener

import (
	"context"
	"errors"
	"fmt"

	"go-shortlink/internal/domain"

	"go.uber.org/zap"
)

// Service implements the core business logic for URL shortening.
type Service struct {
	repo        URLRepository
	logger      *zap.Logger
	codeLength  int
	maxAttempts int
}

// NewService creates a new shortener service.
func NewService(repo URLRepository, logger *zap.Logger, codeLength, maxAttempts int) *Service {
	if codeLength <= 0 {
		codeLength = DefaultCodeLength
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &Service{
		repo:        repo,
		logger:      logger,
		codeLength:  codeLength,
		maxAttempts: maxAttempts,
	}
}

// CreateShortURL validates the destination and creates a short URL. Code
// generation loops on collision: generate, conditional save, regenerate on
// domain.ErrCodeTaken, bounded by the attempt cap.
func (s *Service) CreateShortURL(ctx context.Context, originalURL string) (*domain.URL, error) {
	if err := domain.ValidateOriginalURL(originalURL); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		code, err := GenerateCode(s.codeLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate short code: %w", err)
		}

		u, err := s.repo.Save(ctx, code, originalURL)
		if err != nil {
			if errors.Is(err, domain.ErrCodeTaken) {
				s.logger.Warn("short code collision, regenerating",
					zap.String("short_code", code),
					zap.Int("attempt", attempt+1),
				)
				continue
			}
			return nil, err
		}

		return u, nil
	}

	return nil, domain.ErrCodeGenerationExhausted
}

// Resolve retrieves a URL by its short code.
func (s *Service) Resolve(ctx context.Context, code string) (*domain.URL, error) {
	return s.repo.FindByShortCode(ctx, code)
}
