package risk

import (
	"github.com/saferoute/backend/internal/domain"
	"github.com/saferoute/backend/pkg/geo"
)

// Corridor is the subset of incidents and zones near a route.
type Corridor struct {
	Points []domain.IncidentPoint
	Zones  []domain.Zone
}

// FilterCorridor keeps the incidents, and the zones by centroid, that have at
// least one path sample within corridorRadiusKm. Input order is preserved.
// An empty path yields an empty corridor.
func FilterCorridor(
	path []geo.Point,
	points []domain.IncidentPoint,
	zones []domain.Zone,
	corridorRadiusKm float64,
) (Corridor, error) {
	if err := validateRadius("corridor", corridorRadiusKm); err != nil {
		return Corridor{}, err
	}

	c := Corridor{
		Points: make([]domain.IncidentPoint, 0),
		Zones:  make([]domain.Zone, 0),
	}
	if len(path) == 0 {
		return c, nil
	}

	for _, p := range points {
		if geo.NearPath(path, p.Point, corridorRadiusKm) {
			c.Points = append(c.Points, p)
		}
	}
	for _, z := range zones {
		if geo.NearPath(path, z.Centroid, corridorRadiusKm) {
			c.Zones = append(c.Zones, z)
		}
	}
	return c, nil
}
