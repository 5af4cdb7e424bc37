package staff

import (
	"seedcare/internal/common/api"
	"seedcare/internal/config"
	"seedcare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type StaffApi struct {
	controller *StaffController
	config     *config.Config
}

func NewStaffApi(controller *StaffController, config *config.Config) api.Route {
	return &StaffApi{
		controller: controller,
		config:     config,
	}
}

func (h *StaffApi) Setup(app *fiber.App) {
	group := app.Group("/api/staff", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Get("/", h.controller.List)
	group.Get("/:userId", h.controller.Get)
	group.Post("/", middleware.RequireRole("admin"), h.controller.Create)
	group.Put("/:userId", middleware.RequireRole("admin"), h.controller.Update)
}
