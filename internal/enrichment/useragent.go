package enrichment

import (
	ua "github.com/mileusna/useragent"
)

// DetectDevice returns the device type from a User-Agent string:
// "Desktop", "Mobile", "Tablet", "Bot", or "Unknown".
func DetectDevice(uaString string) string {
	if uaString == "" || uaString == "unknown" {
		return "Unknown"
	}

	parsed := ua.Parse(uaString)

	// Bots are tracked separately even when they spoof a device class
	if parsed.Bot {
		return "Bot"
	}
	if parsed.Tablet {
		return "Tablet"
	}
	if parsed.Mobile {
		return "Mobile"
	}
	if parsed.Desktop {
		return "Desktop"
	}

	return "Unknown"
}
