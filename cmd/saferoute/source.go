package main

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"

	"github.com/saferoute/backend/internal/config"
	"github.com/saferoute/backend/internal/domain"
	"github.com/saferoute/backend/internal/feed"
	"github.com/saferoute/backend/internal/repository/postgres"
	"github.com/saferoute/backend/internal/service"
)

// newSafetyService builds an in-memory service over the feed at path. An
// empty path falls back to INCIDENT_FEED_PATH, then to the built-in sample.
func newSafetyService(c *config.Config, path string) (*service.SafetyService, error) {
	if path == "" {
		path = c.Incident.FeedPath
	}

	var incidents []domain.IncidentPoint
	if path != "" {
		loaded, err := feed.LoadFile(path)
		if err != nil {
			return nil, err
		}
		incidents = loaded
	}

	repo := postgres.NewMockRepository(incidents)
	return service.NewSafetyService(repo, c.Policy(), c.Scoring.Workers), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "saferoute: write output")
	}
	return nil
}
