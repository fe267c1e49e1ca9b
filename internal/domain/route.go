package domain

import (
	"time"

	"github.com/saferoute/backend/pkg/geo"
)

// NoSafeRouteWarning is shown when every candidate passes a high-risk zone
const NoSafeRouteWarning = "No completely safe route available. Proceed with caution."

// RouteCandidate is one alternative returned by a routing provider
type RouteCandidate struct {
	Summary             string      `json:"summary,omitempty"`
	Path                []geo.Point `json:"path"`
	TotalDistanceMeters float64     `json:"distance_meters"`
}

// ScoredRoute is a candidate with its high-risk proximity tally
type ScoredRoute struct {
	Route         RouteCandidate `json:"route"`
	Index         int            `json:"index"`
	DistanceKm    float64        `json:"distance_km"`
	HighRiskHits  int            `json:"high_risk_hits"`
	HitZones      []string       `json:"hit_zones,omitempty"`
	LowConfidence bool           `json:"low_confidence"`
}

// EvaluateRequest is the body accepted by route evaluation
type EvaluateRequest struct {
	Candidates []RouteCandidate `json:"candidates"`
}

// Corridor holds the incidents and zones along the selected route
type Corridor struct {
	Incidents []IncidentPoint  `json:"incidents"`
	Zones     []ClassifiedZone `json:"zones"`
}

// Advisory is the outcome of evaluating a set of candidate routes
type Advisory struct {
	ID            string        `json:"id"`
	FullySafe     bool          `json:"fully_safe"`
	Warning       string        `json:"warning,omitempty"`
	LowConfidence bool          `json:"low_confidence"`
	SelectedIndex int           `json:"selected_index"`
	Selected      ScoredRoute   `json:"selected"`
	Ranking       []ScoredRoute `json:"ranking"`
	Corridor      Corridor      `json:"corridor"`
	EvaluatedAt   time.Time     `json:"evaluated_at"`
}

// SnapshotStatus describes the zone set currently in service
type SnapshotStatus struct {
	Loaded      bool      `json:"loaded"`
	Incidents   int       `json:"incidents"`
	Zones       int       `json:"zones"`
	RefreshedAt time.Time `json:"refreshed_at"`
}
