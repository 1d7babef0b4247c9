package enrichment

import (
	"net"

	"github.com/oschwald/geoip2-golang"
)

// unknownCountry is the sentinel stored when resolution is impossible.
const unknownCountry = "XX"

// GeoIPResolver resolves an IP address to an ISO country code.
type GeoIPResolver struct {
	db *geoip2.Reader
}

// NewGeoIPResolver opens a MaxMind country database. Callers treat an
// error as "run without geo enrichment" rather than fatal.
func NewGeoIPResolver(dbPath string) (*GeoIPResolver, error) {
	db, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, err
	}
	return &GeoIPResolver{db: db}, nil
}

// ResolveCountry returns the ISO country code for an IP, or "XX" when the
// resolver is absent or the lookup fails.
func (r *GeoIPResolver) ResolveCountry(ip string) string {
	if r == nil || r.db == nil || ip == "" {
		return unknownCountry
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return unknownCountry
	}

	record, err := r.db.Country(parsed)
	if err != nil {
		return unknownCountry
	}

	if record.Country.IsoCode == "" {
		return unknownCountry
	}
	return record.Country.IsoCode
}

// Close releases the underlying database.
func (r *GeoIPResolver) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
