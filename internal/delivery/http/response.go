package http

import (
	"encoding/json"
	"net/http"

	"go-shortlink/pkg/problemdetails"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeProblem writes an RFC 7807 Problem Details response
func writeProblem(w http.ResponseWriter, problem *problemdetails.ProblemDetail) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	json.NewEncoder(w).Encode(problem)
}

// CreateShortURLRequest is the request body for creating a short URL.
type CreateShortURLRequest struct {
	URL string `json:"url"`
}

// CreateShortURLResponse is the response for a created short URL.
type CreateShortURLResponse struct {
	ShortURL string `json:"short_url"`
	Code     string `json:"code"`
}

// RecentClickResponse is one click record in the stats view.
type RecentClickResponse struct {
	ClickID       string `json:"click_id"`
	Code          string `json:"code"`
	ClickedAt     int64  `json:"clicked_at"`
	UserAgent     string `json:"user_agent"`
	IP            string `json:"ip"`
	Referer       string `json:"referer,omitempty"`
	DeviceType    string `json:"device_type"`
	TrafficSource string `json:"traffic_source"`
	CountryCode   string `json:"country_code"`
}

// StatsResponse is the read-side analytics view for a short code.
type StatsResponse struct {
	Code         string                `json:"code"`
	TotalClicks  int64                 `json:"total_clicks"`
	RecentClicks []RecentClickResponse `json:"recent_clicks"`
}

// HealthResponse represents health check responses.
type HealthResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}
