package risk

import (
	"cmp"
	"slices"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/saferoute/backend/internal/domain"
	"github.com/saferoute/backend/pkg/geo"
)

const defaultScoringWorkers = 4

// Selection is the ranked outcome of scoring candidate routes.
type Selection struct {
	Selected  domain.ScoredRoute
	FullySafe bool
	Ranking   []domain.ScoredRoute
}

// ScoreOption configures SelectBestRoute.
type ScoreOption func(*scoreOptions)

type scoreOptions struct {
	workers int
}

// WithWorkers bounds how many candidates are scored concurrently.
// Values below 1 fall back to sequential scoring.
func WithWorkers(n int) ScoreOption {
	return func(o *scoreOptions) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// SelectBestRoute ranks candidates by (high-risk hits, distance, input order)
// and returns the top one. FullySafe is false when even the best candidate
// passes near a high-risk zone; that is a normal outcome, not an error.
func SelectBestRoute(
	candidates []domain.RouteCandidate,
	zones []domain.Zone,
	proximityRadiusKm float64,
	classifier Classifier,
	opts ...ScoreOption,
) (Selection, error) {
	if len(candidates) == 0 {
		return Selection{}, eris.Wrap(domain.ErrInvalidArgument, "risk: no candidate routes")
	}
	if err := validateRadius("proximity", proximityRadiusKm); err != nil {
		return Selection{}, err
	}
	if err := classifier.Validate(); err != nil {
		return Selection{}, err
	}

	o := scoreOptions{workers: defaultScoringWorkers}
	for _, opt := range opts {
		opt(&o)
	}

	hotspots := HighRiskZones(zones, classifier)

	// Each goroutine owns one slot, so no locking is needed.
	scored := make([]domain.ScoredRoute, len(candidates))
	var g errgroup.Group
	g.SetLimit(o.workers)
	for i := range candidates {
		g.Go(func() error {
			scored[i] = ScoreRoute(candidates[i], hotspots, proximityRadiusKm)
			scored[i].Index = i
			return nil
		})
	}
	_ = g.Wait()

	ranking := slices.Clone(scored)
	slices.SortStableFunc(ranking, compareScored)

	return Selection{
		Selected:  ranking[0],
		FullySafe: ranking[0].HighRiskHits == 0,
		Ranking:   ranking,
	}, nil
}

// HighRiskZones returns the zones the classifier places in the high tier.
func HighRiskZones(zones []domain.Zone, classifier Classifier) []domain.Zone {
	var hotspots []domain.Zone
	for _, z := range zones {
		if classifier.Classify(z) == domain.TierHigh {
			hotspots = append(hotspots, z)
		}
	}
	return hotspots
}

// ScoreRoute counts how many hotspots have at least one path sample within
// radiusKm of their centroid. A route without samples cannot be shown unsafe,
// so it scores zero hits and is marked low confidence.
func ScoreRoute(route domain.RouteCandidate, hotspots []domain.Zone, radiusKm float64) domain.ScoredRoute {
	sr := domain.ScoredRoute{
		Route:         route,
		DistanceKm:    geo.RoundTo(route.TotalDistanceMeters/1000, 2),
		LowConfidence: len(route.Path) == 0,
	}
	for _, z := range hotspots {
		if geo.NearPath(route.Path, z.Centroid, radiusKm) {
			sr.HighRiskHits++
			sr.HitZones = append(sr.HitZones, z.Name)
		}
	}
	return sr
}

func compareScored(a, b domain.ScoredRoute) int {
	if c := cmp.Compare(a.HighRiskHits, b.HighRiskHits); c != 0 {
		return c
	}
	return cmp.Compare(a.Route.TotalDistanceMeters, b.Route.TotalDistanceMeters)
}
