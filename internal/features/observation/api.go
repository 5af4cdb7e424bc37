package observation

import (
	"seedcare/internal/common/api"
	"seedcare/internal/config"
	"seedcare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ObservationApi struct {
	controller *ObservationController
	config     *config.Config
}

func NewObservationApi(controller *ObservationController, config *config.Config) api.Route {
	return &ObservationApi{
		controller: controller,
		config:     config,
	}
}

func (h *ObservationApi) Setup(app *fiber.App) {
	group := app.Group("/api/complaints")
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	group.Get("/:id/observation", auth, h.controller.GetObservation)
	group.Put("/:id/observation", auth, h.controller.SaveObservation)
	group.Get("/:id/investigation", auth, h.controller.GetInvestigation)
	group.Put("/:id/investigation", auth, h.controller.SaveInvestigation)
	group.Get("/:id/lab-testing", auth, h.controller.GetLabTesting)
	group.Put("/:id/lab-testing", auth, h.controller.SaveLabTesting)
}
