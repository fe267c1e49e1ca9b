package domain

import (
	"fmt"
	"strings"

	"github.com/saferoute/backend/pkg/geo"
)

// UnknownLabel buckets incidents that arrive without a neighbourhood or category
const UnknownLabel = "Unknown"

// IncidentPoint is a single geocoded incident report
type IncidentPoint struct {
	geo.Point
	Category  string `json:"category"`
	ZoneName  string `json:"zone"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Zone aggregates the incidents that share a neighbourhood name
type Zone struct {
	Name             string         `json:"name"`
	Centroid         geo.Point      `json:"centroid"`
	TotalCount       int            `json:"total_count"`
	CountsByCategory map[string]int `json:"counts_by_category"`
}

// ClassifiedZone is a zone paired with its risk tier for display
type ClassifiedZone struct {
	Zone
	Tier RiskTier `json:"tier"`
}

// CategoryCount is the number of incidents recorded for one category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// NormalizeLabel maps blank zone or category names to UnknownLabel
func NormalizeLabel(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return UnknownLabel
	}
	return s
}

// IncidentTimestamp formats the feed's split date fields as "YYYY-MM-DD HH:MM".
// A zero year means the record carries no date.
func IncidentTimestamp(year, month, day, hour, minute int) string {
	if year == 0 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d", year, month, day, hour, minute)
}
