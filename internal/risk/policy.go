package risk

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/saferoute/backend/internal/domain"
)

// Default radii (kilometers).
const (
	DefaultProximityRadiusKm = 0.7 // route sample to high-risk centroid
	DefaultCorridorRadiusKm  = 1.0 // route sample to displayed incident or zone
)

// Policy bundles the tunable constants used when evaluating routes.
type Policy struct {
	ProximityRadiusKm float64
	CorridorRadiusKm  float64
	Classifier        Classifier
}

// DefaultPolicy returns the policy with documented defaults.
func DefaultPolicy() Policy {
	return Policy{
		ProximityRadiusKm: DefaultProximityRadiusKm,
		CorridorRadiusKm:  DefaultCorridorRadiusKm,
		Classifier:        DefaultClassifier(),
	}
}

// Validate checks every policy constant.
func (p Policy) Validate() error {
	if err := validateRadius("proximity", p.ProximityRadiusKm); err != nil {
		return err
	}
	if err := validateRadius("corridor", p.CorridorRadiusKm); err != nil {
		return err
	}
	return p.Classifier.Validate()
}

func validateRadius(name string, km float64) error {
	if math.IsNaN(km) || math.IsInf(km, 0) || km <= 0 {
		return eris.Wrapf(domain.ErrInvalidArgument, "risk: %s radius must be positive, got %v", name, km)
	}
	return nil
}
