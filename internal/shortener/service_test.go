package shortener_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-shortlink/internal/domain"
	"go-shortlink/internal/shortener"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockURLRepository is a function-field test double for URLRepository.
type mockURLRepository struct {
	saveFunc func(ctx context.Context, shortCode, originalURL string) (*domain.URL, error)
	findFunc func(ctx context.Context, code string) (*domain.URL, error)

	saveCalls int
}

func (m *mockURLRepository) Save(ctx context.Context, shortCode, originalURL string) (*domain.URL, error) {
	m.saveCalls++
	return m.saveFunc(ctx, shortCode, originalURL)
}

func (m *mockURLRepository) FindByShortCode(ctx context.Context, code string) (*domain.URL, error) {
	return m.findFunc(ctx, code)
}

// TestCreateShortURL_ValidURL_ReturnsNewShortURL tests successful creation
func TestCreateShortURL_ValidURL_ReturnsNewShortURL(t *testing.T) {
	// Setup
	repo := &mockURLRepository{
		saveFunc: func(ctx context.Context, shortCode, originalURL string) (*domain.URL, error) {
			return &domain.URL{
				ID:          1,
				ShortCode:   shortCode,
				OriginalURL: originalURL,
				CreatedAt:   time.Now(),
			}, nil
		},
	}
	service := shortener.NewService(repo, zap.NewNop(), 7, 5)

	// Act
	result, err := service.CreateShortURL(context.Background(), "https://example.com")

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "https://example.com", result.OriginalURL)
	assert.Len(t, result.ShortCode, 7)
	assert.Equal(t, 1, repo.saveCalls)
}

// TestCreateShortURL_InvalidURL_ReturnsErrorWithoutSave tests that validation
// happens before any storage access
func TestCreateShortURL_InvalidURL_ReturnsErrorWithoutSave(t *testing.T) {
	// Setup
	repo := &mockURLRepository{
		saveFunc: func(ctx context.Context, shortCode, originalURL string) (*domain.URL, error) {
			t.Fatal("Save must not be called for an invalid URL")
			return nil, nil
		},
	}
	service := shortener.NewService(repo, zap.NewNop(), 7, 5)

	for _, url := range []string{"javascript:alert(1)", "ftp://example.com", "not a url", ""} {
		// Act
		result, err := service.CreateShortURL(context.Background(), url)

		// Assert
		require.Error(t, err, "url %q should be rejected", url)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, domain.ErrInvalidURL))
	}
	assert.Equal(t, 0, repo.saveCalls)
}

// TestCreateShortURL_CollisionRetry_SucceedsWithFreshCode tests the
// generate-save-regenerate loop
func TestCreateShortURL_CollisionRetry_SucceedsWithFreshCode(t *testing.T) {
	// Setup: first two saves collide, third succeeds
	var codes []string
	repo := &mockURLRepository{}
	repo.saveFunc = func(ctx context.Context, shortCode, originalURL string) (*domain.URL, error) {
		codes = append(codes, shortCode)
		if repo.saveCalls < 3 {
			return nil, domain.ErrCodeTaken
		}
		return &domain.URL{ID: 1, ShortCode: shortCode, OriginalURL: originalURL, CreatedAt: time.Now()}, nil
	}
	service := shortener.NewService(repo, zap.NewNop(), 7, 5)

	// Act
	result, err := service.CreateShortURL(context.Background(), "https://example.com")

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 3, repo.saveCalls)
	// Each attempt used a freshly generated code
	assert.NotEqual(t, codes[0], codes[2])
}

// TestCreateShortURL_AllAttemptsCollide_ReturnsExhausted tests the retry cap
func TestCreateShortURL_AllAttemptsCollide_ReturnsExhausted(t *testing.T) {
	// Setup
	repo := &mockURLRepository{
		saveFunc: func(ctx context.Context, shortCode, originalURL string) (*domain.URL, error) {
			return nil, domain.ErrCodeTaken
		},
	}
	service := shortener.NewService(repo, zap.NewNop(), 7, 5)

	// Act
	result, err := service.CreateShortURL(context.Background(), "https://example.com")

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrCodeGenerationExhausted))
	assert.Equal(t, 5, repo.saveCalls)
}

// TestCreateShortURL_RepositoryError_ReturnsImmediately tests that only
// collisions are retried
func TestCreateShortURL_RepositoryError_ReturnsImmediately(t *testing.T) {
	// Setup
	repoErr := errors.New("database connection failed")
	repo := &mockURLRepository{
		saveFunc: func(ctx context.Context, shortCode, originalURL string) (*domain.URL, error) {
			return nil, repoErr
		},
	}
	service := shortener.NewService(repo, zap.NewNop(), 7, 5)

	// Act
	result, err := service.CreateShortURL(context.Background(), "https://example.com")

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, repoErr, err)
	assert.Equal(t, 1, repo.saveCalls)
}

// TestCreateShortURL_CanceledContext_StopsRetrying tests context propagation
func TestCreateShortURL_CanceledContext_StopsRetrying(t *testing.T) {
	// Setup
	repo := &mockURLRepository{
		saveFunc: func(ctx context.Context, shortCode, originalURL string) (*domain.URL, error) {
			return nil, domain.ErrCodeTaken
		},
	}
	service := shortener.NewService(repo, zap.NewNop(), 7, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	result, err := service.CreateShortURL(ctx, "https://example.com")

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, repo.saveCalls)
}

// TestResolve_Exists_ReturnsURL tests lookup passthrough
func TestResolve_Exists_ReturnsURL(t *testing.T) {
	// Setup
	expected := &domain.URL{ID: 1, ShortCode: "abc1234", OriginalURL: "https://example.com", CreatedAt: time.Now()}
	repo := &mockURLRepository{
		findFunc: func(ctx context.Context, code string) (*domain.URL, error) {
			assert.Equal(t, "abc1234", code)
			return expected, nil
		},
	}
	service := shortener.NewService(repo, zap.NewNop(), 7, 5)

	// Act
	result, err := service.Resolve(context.Background(), "abc1234")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

// TestResolve_NotFound_ReturnsError tests not-found passthrough
func TestResolve_NotFound_ReturnsError(t *testing.T) {
	// Setup
	repo := &mockURLRepository{
		findFunc: func(ctx context.Context, code string) (*domain.URL, error) {
			return nil, domain.ErrURLNotFound
		},
	}
	service := shortener.NewService(repo, zap.NewNop(), 7, 5)

	// Act
	result, err := service.Resolve(context.Background(), "missing")

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrURLNotFound))
}
