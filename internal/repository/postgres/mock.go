package postgres

import (
	"context"
	"math/rand/v2"

	"github.com/saferoute/backend/internal/domain"
	"github.com/saferoute/backend/pkg/geo"
)

// MockRepository implements domain.IncidentRepository in memory for demo mode
// and offline evaluation
type MockRepository struct {
	incidents []domain.IncidentPoint
}

// NewMockRepository creates a repository serving the given incidents.
// A nil slice selects the built-in Vancouver sample.
func NewMockRepository(incidents []domain.IncidentPoint) *MockRepository {
	if incidents == nil {
		incidents = SampleIncidents()
	}
	return &MockRepository{incidents: incidents}
}

// ListIncidents returns a copy of the stored incidents
func (r *MockRepository) ListIncidents(ctx context.Context) ([]domain.IncidentPoint, error) {
	out := make([]domain.IncidentPoint, len(r.incidents))
	copy(out, r.incidents)
	return out, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}

// SampleIncidents generates a deterministic incident set clustered around
// Vancouver neighbourhoods, sized so every risk tier is represented.
func SampleIncidents() []domain.IncidentPoint {
	hotspots := []struct {
		lat, lng float64
		name     string
		count    int
	}{
		{49.2820, -123.1180, "Central Business District", 720}, // high
		{49.2800, -123.0990, "Strathcona", 640},                // high
		{49.2760, -123.0700, "Grandview-Woodland", 310},        // moderate
		{49.2650, -123.1340, "Fairview", 260},                  // moderate
		{49.2680, -123.1650, "Kitsilano", 140},                 // safe
		{49.2330, -123.1550, "Shaughnessy", 40},                // safe
	}
	categories := []string{
		"Mischief",
		"Other Theft",
		"Theft from Vehicle",
		"Break and Enter Residential/Other",
		"Offence Against a Person",
		"Homicide",
	}

	rng := rand.New(rand.NewPCG(49, 123))
	points := make([]domain.IncidentPoint, 0, 2200)

	// Generate points around each hotspot
	for _, spot := range hotspots {
		for i := 0; i < spot.count; i++ {
			// Random offset within ~0.5km
			latOffset := (rng.Float64() - 0.5) * 0.009
			lngOffset := (rng.Float64() - 0.5) * 0.013

			points = append(points, domain.IncidentPoint{
				Point:     geo.Point{Lat: spot.lat + latOffset, Lng: spot.lng + lngOffset},
				Category:  categories[rng.IntN(len(categories)-1)],
				ZoneName:  spot.name,
				Timestamp: domain.IncidentTimestamp(2024, 1+rng.IntN(12), 1+rng.IntN(28), rng.IntN(24), rng.IntN(60)),
			})
		}
	}

	// One homicide and one record without a neighbourhood round out the legend
	points = append(points,
		domain.IncidentPoint{Point: geo.Point{Lat: 49.2790, Lng: -123.1010}, Category: "Homicide", ZoneName: "Strathcona"},
		domain.IncidentPoint{Point: geo.Point{Lat: 49.2600, Lng: -123.1000}, Category: "Mischief"},
	)

	return points
}
