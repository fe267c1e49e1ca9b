package domain

import (
	"context"
)

// IncidentRepository defines the interface for reading the incident feed.
// Implementations return geodetic (WGS84) coordinates; any projection from the
// source coordinate system happens inside the repository.
type IncidentRepository interface {
	// ListIncidents returns every incident in a stable order
	ListIncidents(ctx context.Context) ([]IncidentPoint, error)

	// Health checks backend connectivity
	Health(ctx context.Context) error
}
