package service

import (
	"github.com/saferoute/backend/internal/domain"
)

// IncidentRepository is re-exported from domain for convenience
type IncidentRepository = domain.IncidentRepository
