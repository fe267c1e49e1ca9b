package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/saferoute/backend/internal/domain"
	"github.com/saferoute/backend/internal/export"
	"github.com/saferoute/backend/internal/service"
)

const geoJSONContentType = "application/geo+json"

// Handler contains all HTTP handlers
type Handler struct {
	safetySvc *service.SafetyService
}

// NewHandler creates a new handler
func NewHandler(safetySvc *service.SafetyService) *Handler {
	return &Handler{safetySvc: safetySvc}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	code := fiber.StatusOK
	if err := h.safetySvc.Health(c.Context()); err != nil {
		zap.L().Warn("http: repository unhealthy", zap.Error(err))
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"service":  "saferoute-backend",
		"version":  "1.0.0",
		"snapshot": h.safetySvc.Status(),
	})
}

// GetIncidents returns incident points, optionally for a single category
func (h *Handler) GetIncidents(c *fiber.Ctx) error {
	incidents, err := h.safetySvc.Incidents(c.Context(), c.Query("category"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    incidents,
		"count":   len(incidents),
	})
}

// GetZones returns classified zones, optionally for a single tier
func (h *Handler) GetZones(c *fiber.Ctx) error {
	tier, err := tierQuery(c)
	if err != nil {
		return err
	}

	zones, err := h.safetySvc.Zones(c.Context(), tier)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    zones,
		"count":   len(zones),
	})
}

// GetZonesGeoJSON returns classified zones as a feature collection
func (h *Handler) GetZonesGeoJSON(c *fiber.Ctx) error {
	tier, err := tierQuery(c)
	if err != nil {
		return err
	}

	zones, err := h.safetySvc.Zones(c.Context(), tier)
	if err != nil {
		return err
	}

	if err := c.JSON(export.ZonesGeoJSON(zones)); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, geoJSONContentType)
	return nil
}

// GetCategories returns incident totals per category
func (h *Handler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.safetySvc.Categories(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    categories,
	})
}

// EvaluateRoutes ranks candidate routes and returns the advisory
func (h *Handler) EvaluateRoutes(c *fiber.Ctx) error {
	var req domain.EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	advisory, err := h.safetySvc.Evaluate(c.Context(), req.Candidates)
	if err != nil {
		return err
	}

	if c.Query("format") == "geojson" {
		if err := c.JSON(export.AdvisoryGeoJSON(advisory)); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, geoJSONContentType)
		return nil
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    advisory,
	})
}

// RefreshZones rebuilds zones from the repository
func (h *Handler) RefreshZones(c *fiber.Ctx) error {
	if _, err := h.safetySvc.Refresh(c.Context()); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.safetySvc.Status(),
	})
}

func tierQuery(c *fiber.Ctx) (*domain.RiskTier, error) {
	raw := c.Query("tier")
	if raw == "" {
		return nil, nil
	}
	tier, err := domain.ParseRiskTier(raw)
	if err != nil {
		return nil, err
	}
	return &tier, nil
}
