package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/saferoute/backend/internal/domain"
	"github.com/saferoute/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, safetySvc *service.SafetyService) {
	handler := NewHandler(safetySvc)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/incidents", handler.GetIncidents)
		api.Get("/categories", handler.GetCategories)

		api.Get("/zones", handler.GetZones)
		api.Get("/zones/geojson", handler.GetZonesGeoJSON)
		api.Post("/zones/refresh", handler.RefreshZones)

		api.Post("/routes/evaluate", handler.EvaluateRoutes)
	}
}

// ErrorHandler renders handler errors as {"error": true, "message": ...}.
// Invalid arguments become 400; anything unrecognized is logged and
// reported as 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	} else if eris.Is(err, domain.ErrInvalidArgument) {
		code = fiber.StatusBadRequest
		message = err.Error()
	} else {
		zap.L().Error("http: request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
