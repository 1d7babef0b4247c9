package domain

// ClickEvent is the wire payload carried from the redirect path to the
// tracker. It has no identity of its own and may be delivered more than
// once by the broker.
type ClickEvent struct {
	Code      string `json:"code"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
	UserAgent string `json:"user_agent"`
	IP        string `json:"ip"`
	Referer   string `json:"referer,omitempty"`
}

// ClickRecord is the persisted form of a ClickEvent. The ClickID is
// assigned at persistence time, so a redelivered event produces a new
// record rather than overwriting an existing one.
type ClickRecord struct {
	ClickID       string `json:"click_id"`
	Code          string `json:"code"`
	ClickedAt     int64  `json:"clicked_at"` // unix milliseconds
	UserAgent     string `json:"user_agent"`
	IP            string `json:"ip"`
	Referer       string `json:"referer,omitempty"`
	DeviceType    string `json:"device_type"`
	TrafficSource string `json:"traffic_source"`
	CountryCode   string `json:"country_code"`
}
