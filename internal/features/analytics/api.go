package analytics

import (
	"seedcare/internal/common/api"
	"seedcare/internal/config"
	"seedcare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsApi struct {
	controller *AnalyticsController
	config     *config.Config
}

func NewAnalyticsApi(controller *AnalyticsController, config *config.Config) api.Route {
	return &AnalyticsApi{
		controller: controller,
		config:     config,
	}
}

func (h *AnalyticsApi) Setup(app *fiber.App) {
	group := app.Group("/api/analytics/complaints", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Get("/", h.controller.GetReport)
	group.Get("/export", h.controller.Export)
}
