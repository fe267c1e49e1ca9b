// Package risk aggregates incidents into zones and ranks candidate routes by
// their exposure to high-risk zones. Everything here is a pure function of
// its arguments.
package risk

import (
	"github.com/rotisserie/eris"

	"github.com/saferoute/backend/internal/domain"
)

// Default tier thresholds (incident counts per zone).
const (
	DefaultModerateThreshold = 200 // count >= 200 is moderate
	DefaultHighThreshold     = 600 // count >= 600 is high
)

// Classifier maps zone incident counts onto risk tiers using fixed thresholds.
// The thresholds are policy, not derived from the data distribution.
type Classifier struct {
	ModerateThreshold int
	HighThreshold     int
}

// DefaultClassifier returns the 200/600 classifier.
func DefaultClassifier() Classifier {
	return Classifier{
		ModerateThreshold: DefaultModerateThreshold,
		HighThreshold:     DefaultHighThreshold,
	}
}

// Validate checks that the thresholds are positive and ordered.
func (c Classifier) Validate() error {
	if c.ModerateThreshold <= 0 || c.HighThreshold <= 0 {
		return eris.Wrapf(domain.ErrInvalidArgument,
			"risk: tier thresholds must be positive, got moderate=%d high=%d",
			c.ModerateThreshold, c.HighThreshold)
	}
	if c.ModerateThreshold >= c.HighThreshold {
		return eris.Wrapf(domain.ErrInvalidArgument,
			"risk: moderate threshold %d must be below high threshold %d",
			c.ModerateThreshold, c.HighThreshold)
	}
	return nil
}

// TierFor returns the tier for a raw incident count.
// Rules:
//   - safe: count < moderate
//   - moderate: moderate <= count < high
//   - high: count >= high
func (c Classifier) TierFor(count int) domain.RiskTier {
	switch {
	case count >= c.HighThreshold:
		return domain.TierHigh
	case count >= c.ModerateThreshold:
		return domain.TierModerate
	default:
		return domain.TierSafe
	}
}

// Classify returns the tier of a zone.
func (c Classifier) Classify(zone domain.Zone) domain.RiskTier {
	return c.TierFor(zone.TotalCount)
}

// ClassifyAll pairs each zone with its tier, preserving order.
func (c Classifier) ClassifyAll(zones []domain.Zone) []domain.ClassifiedZone {
	out := make([]domain.ClassifiedZone, 0, len(zones))
	for _, z := range zones {
		out = append(out, domain.ClassifiedZone{Zone: z, Tier: c.Classify(z)})
	}
	return out
}
