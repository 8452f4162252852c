package catalog

import (
	"sort"
	"time"

	"github.com/samvad-hq/city-pulse/internal/domain"
)

// SeverityColors maps each severity to its display color.
var SeverityColors = map[domain.Severity]string{
	domain.SeverityLow:      "#4CAF50",
	domain.SeverityMedium:   "#FF9800",
	domain.SeverityHigh:     "#F44336",
	domain.SeverityCritical: "#9C27B0",
}

// SeverityColor returns the hex color for sev, or "" for unknown severities.
func SeverityColor(sev domain.Severity) string {
	return SeverityColors[sev]
}

// Alerts returns the hardcoded alerts with timestamps relative to now,
// critical first and newest first within a severity.
func Alerts(now time.Time) []domain.Alert {
	alerts := []domain.Alert{
		{
			ID:          "alert-1",
			Title:       "Severe Weather Warning",
			Description: "Heavy thunderstorms expected in the area. Seek shelter and avoid travel if possible.",
			Severity:    domain.SeverityHigh,
			Timestamp:   now,
		},
		{
			ID:          "alert-2",
			Title:       "Traffic Advisory",
			Description: "Major road construction on Highway 101. Expect delays and consider alternate routes.",
			Severity:    domain.SeverityMedium,
			Timestamp:   now.Add(-time.Hour),
		},
		{
			ID:          "alert-3",
			Title:       "Air Quality Alert",
			Description: "Air quality index is elevated. Sensitive groups should limit outdoor activities.",
			Severity:    domain.SeverityLow,
			Timestamp:   now.Add(-2 * time.Hour),
		},
		{
			ID:          "alert-4",
			Title:       "Emergency Evacuation Notice",
			Description: "Mandatory evacuation order for Zone A due to wildfire. Leave immediately via designated routes.",
			Severity:    domain.SeverityCritical,
			Timestamp:   now.Add(-30 * time.Minute),
		},
	}
	SortAlerts(alerts)
	return alerts
}

// SortAlerts orders alerts in place by severity, then newest first.
func SortAlerts(alerts []domain.Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := alerts[i].Severity.Rank(), alerts[j].Severity.Rank()
		if ri != rj {
			return ri < rj
		}
		return alerts[i].Timestamp.After(alerts[j].Timestamp)
	})
}
