package enrichment

import (
	"net/url"
	"strings"
)

var (
	searchEngines = []string{
		"google.", "bing.", "yahoo.", "duckduckgo.", "baidu.", "yandex.", "ecosia.",
	}
	socialNetworks = []string{
		"facebook.", "twitter.", "x.com", "t.co", "instagram.", "linkedin.",
		"reddit.", "youtube.", "tiktok.", "pinterest.",
	}
)

// ClassifyTrafficSource categorizes a referer URL into "Direct", "Search",
// "Social", or "Referral".
func ClassifyTrafficSource(referer string) string {
	if referer == "" {
		return "Direct"
	}

	host := referer
	if parsed, err := url.Parse(referer); err == nil && parsed.Host != "" {
		host = parsed.Host
	}
	host = strings.ToLower(host)

	for _, engine := range searchEngines {
		if strings.Contains(host, engine) {
			return "Search"
		}
	}
	for _, social := range socialNetworks {
		if strings.Contains(host, social) {
			return "Social"
		}
	}

	return "Referral"
}
