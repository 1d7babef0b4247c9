package enrichment_test

import (
	"testing"

	"go-shortlink/internal/enrichment"

	"github.com/stretchr/testify/assert"
)

// TestDetectDevice_ClassifiesCommonUserAgents covers the device classes
func TestDetectDevice_ClassifiesCommonUserAgents(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		expected  string
	}{
		{
			name:      "desktop chrome",
			userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			expected:  "Desktop",
		},
		{
			name:      "iphone safari",
			userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			expected:  "Mobile",
		},
		{
			name:      "ipad safari",
			userAgent: "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			expected:  "Tablet",
		},
		{
			name:      "googlebot",
			userAgent: "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			expected:  "Bot",
		},
		{
			name:      "empty user agent",
			userAgent: "",
			expected:  "Unknown",
		},
		{
			name:      "unknown placeholder",
			userAgent: "unknown",
			expected:  "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, enrichment.DetectDevice(tt.userAgent))
		})
	}
}
