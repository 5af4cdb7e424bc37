package digest

import (
	"seedcare/internal/common/api"
	"seedcare/internal/config"
	"seedcare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DigestApi struct {
	controller *DigestController
	config     *config.Config
}

func NewDigestApi(controller *DigestController, config *config.Config) api.Route {
	return &DigestApi{
		controller: controller,
		config:     config,
	}
}

func (h *DigestApi) Setup(app *fiber.App) {
	group := app.Group("/api/analytics/snapshots", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Get("/", h.controller.ListSnapshots)
	group.Post("/run", middleware.RequireRole("admin"), h.controller.Run)
}
