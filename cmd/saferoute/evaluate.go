package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/saferoute/backend/internal/config"
	"github.com/saferoute/backend/internal/domain"
	"github.com/saferoute/backend/internal/export"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Rank candidate routes against an incident feed",
	Long:  "Aggregates the incident feed into zones, scores each candidate route and prints the advisory for the safest one.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		incidents, _ := cmd.Flags().GetString("incidents")
		routes, _ := cmd.Flags().GetString("routes")
		asGeoJSON, _ := cmd.Flags().GetBool("geojson")

		return runEvaluate(cmd.Context(), cmd.OutOrStdout(), cfg, incidents, routes, asGeoJSON)
	},
}

func init() {
	f := evaluateCmd.Flags()
	f.String("incidents", "", "incident feed JSON file (defaults to INCIDENT_FEED_PATH, then the built-in sample)")
	f.String("routes", "", "JSON file with {\"candidates\": [...]} route candidates")
	f.Bool("geojson", false, "print the advisory as a GeoJSON FeatureCollection")
	_ = evaluateCmd.MarkFlagRequired("routes")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(ctx context.Context, w io.Writer, c *config.Config, incidentsPath, routesPath string, asGeoJSON bool) error {
	candidates, err := loadCandidates(routesPath)
	if err != nil {
		return err
	}

	svc, err := newSafetyService(c, incidentsPath)
	if err != nil {
		return err
	}

	advisory, err := svc.Evaluate(ctx, candidates)
	if err != nil {
		return eris.Wrap(err, "evaluate")
	}

	if asGeoJSON {
		return writeJSON(w, export.AdvisoryGeoJSON(advisory))
	}
	return writeJSON(w, advisory)
}

func loadCandidates(path string) ([]domain.RouteCandidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "evaluate: open routes %s", path)
	}
	defer f.Close()

	var req domain.EvaluateRequest
	if err := json.NewDecoder(f).Decode(&req); err != nil {
		return nil, eris.Wrapf(err, "evaluate: decode routes %s", path)
	}
	return req.Candidates, nil
}
