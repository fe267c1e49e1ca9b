package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	vancouverCityHall = Point{Lat: 49.2609, Lng: -123.1139}
	waterfront        = Point{Lat: 49.2856, Lng: -123.1115}
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Point
		expected float64
		delta    float64
	}{
		{
			name:     "identical points",
			a:        vancouverCityHall,
			b:        vancouverCityHall,
			expected: 0,
			delta:    0,
		},
		{
			name:     "one degree of latitude",
			a:        Point{Lat: 0, Lng: 0},
			b:        Point{Lat: 1, Lng: 0},
			expected: 111.195,
			delta:    0.001,
		},
		{
			name:     "city hall to waterfront",
			a:        vancouverCityHall,
			b:        waterfront,
			expected: 2.75,
			delta:    0.01,
		},
		{
			name:     "antipodal points",
			a:        Point{Lat: 0, Lng: 0},
			b:        Point{Lat: 0, Lng: 180},
			expected: 20015.087,
			delta:    0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, DistanceKm(tt.a, tt.b), tt.delta)
		})
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	points := []Point{
		vancouverCityHall,
		waterfront,
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 89.9, Lng: -179.9},
		{Lat: 0, Lng: 0},
	}
	for _, a := range points {
		for _, b := range points {
			assert.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-9)
			assert.GreaterOrEqual(t, DistanceKm(a, b), 0.0)
		}
		assert.Equal(t, 0.0, DistanceKm(a, a))
	}
}

func TestWithin_Inclusive(t *testing.T) {
	d := DistanceKm(vancouverCityHall, waterfront)
	assert.True(t, Within(vancouverCityHall, waterfront, d))
	assert.False(t, Within(vancouverCityHall, waterfront, d-0.001))
}

func TestNearPath(t *testing.T) {
	path := []Point{{Lat: 49.2000, Lng: -123.0000}, waterfront}

	assert.True(t, NearPath(path, Point{Lat: 49.2860, Lng: -123.1110}, 0.1))
	assert.False(t, NearPath(path, vancouverCityHall, 0.5))
	assert.False(t, NearPath(nil, waterfront, 100))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-0.5, 0, 1))
	assert.Equal(t, 1.0, Clamp(1.0000001, 0, 1))
	assert.Equal(t, 0.25, Clamp(0.25, 0, 1))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.23, RoundTo(1.2345, 2))
	assert.Equal(t, 2.0, RoundTo(1.96, 1))
	assert.Equal(t, 3.0, RoundTo(3.4, 0))
}
