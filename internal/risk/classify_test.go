package risk

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"

	"github.com/saferoute/backend/internal/domain"
)

func TestClassifier_TierFor(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		expected domain.RiskTier
	}{
		{name: "safe: empty zone", count: 0, expected: domain.TierSafe},
		{name: "safe: just below moderate", count: 199, expected: domain.TierSafe},
		{name: "moderate: at threshold", count: 200, expected: domain.TierModerate},
		{name: "moderate: just below high", count: 599, expected: domain.TierModerate},
		{name: "high: at threshold", count: 600, expected: domain.TierHigh},
		{name: "high: well above", count: 5000, expected: domain.TierHigh},
	}

	c := DefaultClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.TierFor(tt.count))
			assert.Equal(t, tt.expected, c.Classify(domain.Zone{TotalCount: tt.count}))
		})
	}
}

func TestClassifier_Validate(t *testing.T) {
	tests := []struct {
		name    string
		c       Classifier
		wantErr bool
	}{
		{name: "defaults", c: DefaultClassifier()},
		{name: "custom", c: Classifier{ModerateThreshold: 10, HighThreshold: 20}},
		{name: "zero moderate", c: Classifier{ModerateThreshold: 0, HighThreshold: 20}, wantErr: true},
		{name: "negative high", c: Classifier{ModerateThreshold: 10, HighThreshold: -1}, wantErr: true},
		{name: "equal thresholds", c: Classifier{ModerateThreshold: 20, HighThreshold: 20}, wantErr: true},
		{name: "inverted thresholds", c: Classifier{ModerateThreshold: 30, HighThreshold: 20}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr {
				assert.True(t, eris.Is(err, domain.ErrInvalidArgument))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClassifier_ClassifyAll(t *testing.T) {
	zones := []domain.Zone{
		{Name: "A", TotalCount: 700},
		{Name: "B", TotalCount: 50},
		{Name: "C", TotalCount: 250},
	}

	classified := DefaultClassifier().ClassifyAll(zones)
	assert.Len(t, classified, 3)
	assert.Equal(t, "A", classified[0].Name)
	assert.Equal(t, domain.TierHigh, classified[0].Tier)
	assert.Equal(t, domain.TierSafe, classified[1].Tier)
	assert.Equal(t, domain.TierModerate, classified[2].Tier)
}

func TestPolicy_Validate(t *testing.T) {
	assert.NoError(t, DefaultPolicy().Validate())

	p := DefaultPolicy()
	p.CorridorRadiusKm = 0
	assert.True(t, eris.Is(p.Validate(), domain.ErrInvalidArgument))

	p = DefaultPolicy()
	p.ProximityRadiusKm = -0.7
	assert.True(t, eris.Is(p.Validate(), domain.ErrInvalidArgument))

	p = DefaultPolicy()
	p.Classifier.HighThreshold = 100
	assert.True(t, eris.Is(p.Validate(), domain.ErrInvalidArgument))
}
