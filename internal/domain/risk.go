package domain

import (
	"strings"

	"github.com/rotisserie/eris"
)

// RiskTier classifies a zone by its incident count
type RiskTier int

const (
	TierSafe RiskTier = iota
	TierModerate
	TierHigh
)

var tierNames = map[RiskTier]string{
	TierSafe:     "safe",
	TierModerate: "moderate",
	TierHigh:     "high",
}

// String returns the lower-case tier name
func (t RiskTier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the tier by name
func (t RiskTier) MarshalText() ([]byte, error) {
	if _, ok := tierNames[t]; !ok {
		return nil, eris.Errorf("domain: invalid risk tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tier name
func (t *RiskTier) UnmarshalText(text []byte) error {
	parsed, err := ParseRiskTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseRiskTier converts "safe", "moderate" or "high" into a RiskTier.
// Matching ignores case and surrounding spaces.
func ParseRiskTier(s string) (RiskTier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for tier, name := range tierNames {
		if name == s {
			return tier, nil
		}
	}
	return TierSafe, eris.Wrapf(ErrInvalidArgument, "domain: unknown risk tier %q", s)
}
