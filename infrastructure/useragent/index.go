package useragent

import "github.com/mileusna/useragent"

// ParseUserAgent extracts the device details recorded on sessions and
// security events.
func ParseUserAgent(agent string) *UserAgent {
	parsed := useragent.Parse(agent)
	return &UserAgent{
		Bot:       parsed.Bot,
		OS:        parsed.OS,
		OSVersion: parsed.VersionNoFull(),
		Device:    parsed.Device,
		Name:      parsed.Name,
		Mobile:    parsed.Mobile || parsed.Tablet,
	}
}
