package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"go-shortlink/internal/analytics"
	"go-shortlink/internal/domain"
	"go-shortlink/internal/metrics"
	"go-shortlink/internal/shortener"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// unknownValue is stored when a request header carrying caller metadata is
// absent; a missing header degrades instead of failing the redirect.
const unknownValue = "unknown"

// ClickPublisher emits a click event without blocking the response path.
type ClickPublisher interface {
	PublishClick(event domain.ClickEvent)
}

// Handler handles HTTP requests for short URL operations.
type Handler struct {
	shortener *shortener.Service
	analytics *analytics.Service
	publisher ClickPublisher
	logger    *zap.Logger
	db        *sql.DB
	baseURL   string
}

// NewHandler creates a new Handler
func NewHandler(
	shortenerSvc *shortener.Service,
	analyticsSvc *analytics.Service,
	publisher ClickPublisher,
	logger *zap.Logger,
	db *sql.DB,
	baseURL string,
) *Handler {
	return &Handler{
		shortener: shortenerSvc,
		analytics: analyticsSvc,
		publisher: publisher,
		logger:    logger,
		db:        db,
		baseURL:   baseURL,
	}
}

// CreateShortURL handles POST /api/v1/urls
func (h *Handler) CreateShortURL(w http.ResponseWriter, r *http.Request) {
	var req CreateShortURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, invalidRequestProblem("Request body must be valid JSON with 'url' field"))
		return
	}

	u, err := h.shortener.CreateShortURL(r.Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidURL):
			writeProblem(w, invalidURLProblem(err))
		case errors.Is(err, domain.ErrCodeGenerationExhausted):
			h.logger.Error("short code generation exhausted", zap.Error(err))
			writeProblem(w, internalProblem("Failed to generate short code"))
		default:
			h.logger.Error("failed to create short url", zap.Error(err))
			writeProblem(w, internalProblem("Internal server error"))
		}
		return
	}

	metrics.RecordURLCreated()
	writeJSON(w, http.StatusCreated, CreateShortURLResponse{
		ShortURL: h.baseURL + "/" + u.ShortCode,
		Code:     u.ShortCode,
	})
}

// Redirect handles GET /{code}. The redirect response is fully prepared
// before the click event is handed off, so publish latency and publish
// failures never reach the caller.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := domain.ValidateShortCode(code); err != nil {
		writeProblem(w, invalidCodeProblem())
		return
	}

	u, err := h.shortener.Resolve(r.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrURLNotFound) {
			writeProblem(w, notFoundProblem(code))
			return
		}
		h.logger.Error("failed to resolve short url",
			zap.String("short_code", code),
			zap.Error(err),
		)
		writeProblem(w, internalProblem("Internal server error"))
		return
	}

	// Re-check the stored scheme even though creation validated it: a
	// record written around the create path must never become a redirect
	// to a script-invoking URL.
	if !storedURLRedirectable(u.OriginalURL) {
		h.logger.Warn("refusing redirect to non-http destination",
			zap.String("short_code", code),
		)
		writeProblem(w, notFoundProblem(code))
		return
	}

	// Extract caller metadata before responding; r is not safe to touch
	// from the publish goroutine.
	event := domain.ClickEvent{
		Code:      code,
		Timestamp: time.Now().UnixMilli(),
		UserAgent: headerOrUnknown(r, "User-Agent"),
		IP:        clientIP(r),
		Referer:   r.Header.Get("Referer"),
	}

	h.publisher.PublishClick(event)

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Referrer-Policy", "no-referrer")
	http.Redirect(w, r, u.OriginalURL, http.StatusFound)

	metrics.RecordRedirect()
}

// Stats handles GET /stats/{code}
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := domain.ValidateShortCode(code); err != nil {
		writeProblem(w, invalidCodeProblem())
		return
	}

	stats, err := h.analytics.GetStats(r.Context(), code)
	if err != nil {
		h.logger.Error("failed to load stats",
			zap.String("short_code", code),
			zap.Error(err),
		)
		writeProblem(w, internalProblem("Internal server error"))
		return
	}

	recent := lo.Map(stats.RecentClicks, func(rec domain.ClickRecord, _ int) RecentClickResponse {
		return RecentClickResponse{
			ClickID:       rec.ClickID,
			Code:          rec.Code,
			ClickedAt:     rec.ClickedAt,
			UserAgent:     rec.UserAgent,
			IP:            rec.IP,
			Referer:       rec.Referer,
			DeviceType:    rec.DeviceType,
			TrafficSource: rec.TrafficSource,
			CountryCode:   rec.CountryCode,
		}
	})

	writeJSON(w, http.StatusOK, StatsResponse{
		Code:         stats.Code,
		TotalClicks:  stats.TotalClicks,
		RecentClicks: recent,
	})
}

// Healthz handles GET /healthz (liveness probe)
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz handles GET /readyz (readiness probe)
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
			Reason: "database unavailable",
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "ready"})
}

func storedURLRedirectable(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return domain.IsRedirectableScheme(parsed.Scheme)
}

func headerOrUnknown(r *http.Request, name string) string {
	if v := r.Header.Get(name); v != "" {
		return v
	}
	return unknownValue
}

func clientIP(r *http.Request) string {
	// RealIP middleware rewrites RemoteAddr from forwarding headers
	addr := r.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	if addr == "" {
		return unknownValue
	}
	return addr
}
