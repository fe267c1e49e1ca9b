package export

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saferoute/backend/internal/domain"
	"github.com/saferoute/backend/pkg/geo"
)

func sampleZones() []domain.ClassifiedZone {
	return []domain.ClassifiedZone{
		{
			Zone: domain.Zone{
				Name:             "Strathcona",
				Centroid:         geo.Point{Lat: 49.28, Lng: -123.10},
				TotalCount:       640,
				CountsByCategory: map[string]int{"Mischief": 640},
			},
			Tier: domain.TierHigh,
		},
	}
}

func TestZonesGeoJSON(t *testing.T) {
	fc := ZonesGeoJSON(sampleZones())
	require.Len(t, fc.Features, 1)

	f := fc.Features[0]
	assert.Equal(t, orb.Point{-123.10, 49.28}, f.Geometry)
	assert.Equal(t, "Strathcona", f.ID)
	assert.Equal(t, "high", f.Properties["tier"])
	assert.Equal(t, 640, f.Properties["total_count"])

	data, err := json.Marshal(fc)
	require.NoError(t, err)

	decoded, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, decoded.Features, 1)
	assert.Equal(t, KindZone, decoded.Features[0].Properties.MustString("kind"))
}

func TestZonesGeoJSON_Empty(t *testing.T) {
	data, err := json.Marshal(ZonesGeoJSON(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data))
}

func TestAdvisoryGeoJSON(t *testing.T) {
	adv := domain.Advisory{
		ID:        "eval-1",
		FullySafe: false,
		Warning:   domain.NoSafeRouteWarning,
		Selected: domain.ScoredRoute{
			Route: domain.RouteCandidate{
				Summary:             "Hastings St",
				Path:                []geo.Point{{Lat: 49.281, Lng: -123.11}, {Lat: 49.281, Lng: -123.09}},
				TotalDistanceMeters: 1450,
			},
			HighRiskHits: 1,
		},
		Corridor: domain.Corridor{
			Incidents: []domain.IncidentPoint{
				{Point: geo.Point{Lat: 49.2805, Lng: -123.1001}, Category: "Mischief", ZoneName: "Strathcona"},
			},
			Zones: sampleZones(),
		},
	}

	fc := AdvisoryGeoJSON(adv)
	require.Len(t, fc.Features, 3)

	route := fc.Features[0]
	assert.Equal(t, orb.LineString{{-123.11, 49.281}, {-123.09, 49.281}}, route.Geometry)
	assert.Equal(t, KindRoute, route.Properties["kind"])
	assert.Equal(t, false, route.Properties["fully_safe"])
	assert.Equal(t, domain.NoSafeRouteWarning, route.Properties["warning"])

	assert.Equal(t, KindZone, fc.Features[1].Properties["kind"])
	assert.Equal(t, KindIncident, fc.Features[2].Properties["kind"])
	assert.Equal(t, orb.Point{-123.1001, 49.2805}, fc.Features[2].Geometry)
}
