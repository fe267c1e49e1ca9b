package risk

import (
	"github.com/saferoute/backend/internal/domain"
	"github.com/saferoute/backend/pkg/geo"
)

// Aggregate groups incidents into zones by neighbourhood name.
//
// Incidents without a zone name land in the "Unknown" zone and incidents
// without a category are tallied under "Unknown", so a malformed record never
// aborts the batch. Zones are returned in order of first occurrence and each
// centroid is the plain arithmetic mean of its members' coordinates.
func Aggregate(points []domain.IncidentPoint) []domain.Zone {
	zones := make([]domain.Zone, 0)
	sums := make([]geo.Point, 0)
	index := make(map[string]int)

	for _, p := range points {
		name := domain.NormalizeLabel(p.ZoneName)
		i, ok := index[name]
		if !ok {
			i = len(zones)
			index[name] = i
			zones = append(zones, domain.Zone{
				Name:             name,
				CountsByCategory: make(map[string]int),
			})
			sums = append(sums, geo.Point{})
		}

		z := &zones[i]
		z.TotalCount++
		z.CountsByCategory[domain.NormalizeLabel(p.Category)]++
		sums[i].Lat += p.Lat
		sums[i].Lng += p.Lng
	}

	for i := range zones {
		n := float64(zones[i].TotalCount)
		zones[i].Centroid = geo.Point{Lat: sums[i].Lat / n, Lng: sums[i].Lng / n}
	}

	return zones
}

// CategoryTotals counts incidents per category across the whole feed, in
// order of first occurrence.
func CategoryTotals(points []domain.IncidentPoint) []domain.CategoryCount {
	totals := make([]domain.CategoryCount, 0)
	index := make(map[string]int)
	for _, p := range points {
		category := domain.NormalizeLabel(p.Category)
		i, ok := index[category]
		if !ok {
			i = len(totals)
			index[category] = i
			totals = append(totals, domain.CategoryCount{Category: category})
		}
		totals[i].Count++
	}
	return totals
}
