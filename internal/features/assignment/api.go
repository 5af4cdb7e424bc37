package assignment

import (
	"seedcare/internal/common/api"
	"seedcare/internal/config"
	"seedcare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AssignmentApi struct {
	controller *AssignmentController
	config     *config.Config
}

func NewAssignmentApi(controller *AssignmentController, config *config.Config) api.Route {
	return &AssignmentApi{
		controller: controller,
		config:     config,
	}
}

func (h *AssignmentApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	complaints := app.Group("/api/complaints")
	complaints.Post("/:id/assign", auth, h.controller.Assign)
	complaints.Post("/:id/auto-assign", auth, h.controller.AutoAssign)
	complaints.Post("/:id/unassign", auth, h.controller.Unassign)
	complaints.Get("/:id/assignments", auth, h.controller.ListHistory)

	app.Get("/api/staff/workload/:department", auth, h.controller.Workload)
}
