package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/saferoute/backend/internal/config"
	"github.com/saferoute/backend/internal/domain"
	"github.com/saferoute/backend/internal/export"
)

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Print aggregated risk zones",
	Long:  "Groups the incident feed by neighbourhood and prints each zone with its centroid, counts and risk tier.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		incidents, _ := cmd.Flags().GetString("incidents")
		tier, _ := cmd.Flags().GetString("tier")
		asGeoJSON, _ := cmd.Flags().GetBool("geojson")

		return runZones(cmd.Context(), cmd.OutOrStdout(), cfg, incidents, tier, asGeoJSON)
	},
}

func init() {
	f := zonesCmd.Flags()
	f.String("incidents", "", "incident feed JSON file (defaults to INCIDENT_FEED_PATH, then the built-in sample)")
	f.String("tier", "", "only print zones of this tier (safe, moderate, high)")
	f.Bool("geojson", false, "print zones as a GeoJSON FeatureCollection")

	rootCmd.AddCommand(zonesCmd)
}

func runZones(ctx context.Context, w io.Writer, c *config.Config, incidentsPath, tierName string, asGeoJSON bool) error {
	var tier *domain.RiskTier
	if tierName != "" {
		parsed, err := domain.ParseRiskTier(tierName)
		if err != nil {
			return err
		}
		tier = &parsed
	}

	svc, err := newSafetyService(c, incidentsPath)
	if err != nil {
		return err
	}

	zones, err := svc.Zones(ctx, tier)
	if err != nil {
		return err
	}

	if asGeoJSON {
		return writeJSON(w, export.ZonesGeoJSON(zones))
	}
	return writeJSON(w, zones)
}
