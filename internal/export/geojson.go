// Package export renders zones and route advisories as GeoJSON for map layers.
package export

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/saferoute/backend/internal/domain"
	"github.com/saferoute/backend/pkg/geo"
)

// Feature kinds written to the "kind" property.
const (
	KindZone     = "zone"
	KindIncident = "incident"
	KindRoute    = "route"
)

// ZonesGeoJSON returns one point feature per zone, placed at its centroid.
func ZonesGeoJSON(zones []domain.ClassifiedZone) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, z := range zones {
		fc.Append(zoneFeature(z))
	}
	return fc
}

// AdvisoryGeoJSON returns the selected route as a line string followed by
// the corridor zones and incidents.
func AdvisoryGeoJSON(adv domain.Advisory) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	route := geojson.NewFeature(lineString(adv.Selected.Route.Path))
	route.ID = adv.ID
	route.Properties["kind"] = KindRoute
	route.Properties["summary"] = adv.Selected.Route.Summary
	route.Properties["distance_meters"] = adv.Selected.Route.TotalDistanceMeters
	route.Properties["high_risk_hits"] = adv.Selected.HighRiskHits
	route.Properties["fully_safe"] = adv.FullySafe
	route.Properties["low_confidence"] = adv.LowConfidence
	if adv.Warning != "" {
		route.Properties["warning"] = adv.Warning
	}
	fc.Append(route)

	for _, z := range adv.Corridor.Zones {
		fc.Append(zoneFeature(z))
	}
	for _, p := range adv.Corridor.Incidents {
		f := geojson.NewFeature(point(p.Point))
		f.Properties["kind"] = KindIncident
		f.Properties["category"] = p.Category
		f.Properties["zone"] = p.ZoneName
		if p.Timestamp != "" {
			f.Properties["timestamp"] = p.Timestamp
		}
		fc.Append(f)
	}
	return fc
}

func zoneFeature(z domain.ClassifiedZone) *geojson.Feature {
	f := geojson.NewFeature(point(z.Centroid))
	f.ID = z.Name
	f.Properties["kind"] = KindZone
	f.Properties["name"] = z.Name
	f.Properties["total_count"] = z.TotalCount
	f.Properties["tier"] = z.Tier.String()
	f.Properties["counts_by_category"] = z.CountsByCategory
	return f
}

// GeoJSON positions are [lng, lat].
func point(p geo.Point) orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

func lineString(path []geo.Point) orb.LineString {
	ls := make(orb.LineString, 0, len(path))
	for _, p := range path {
		ls = append(ls, point(p))
	}
	return ls
}
