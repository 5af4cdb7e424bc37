package complaint

import (
	"seedcare/internal/common/api"
	"seedcare/internal/config"
	"seedcare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ComplaintApi struct {
	controller *ComplaintController
	config     *config.Config
}

func NewComplaintApi(controller *ComplaintController, config *config.Config) api.Route {
	return &ComplaintApi{
		controller: controller,
		config:     config,
	}
}

func (h *ComplaintApi) Setup(app *fiber.App) {
	// Auth is attached per route: the group shares its prefix with the public intake endpoints
	group := app.Group("/api/complaints")
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	// Public
	group.Post("/", h.controller.Create)
	group.Get("/track/:number", h.controller.Track)
	group.Post("/track/:number/feedback", h.controller.SubmitFeedbackByNumber)
	group.Post("/:id/feedback", h.controller.SubmitFeedback)

	// Staff
	group.Get("/", auth, h.controller.List)
	group.Get("/:id", auth, h.controller.Get)
	group.Put("/:id/status", auth, h.controller.UpdateStatus)
	group.Post("/:id/acknowledge", auth, h.controller.Acknowledge)
	group.Post("/:id/resolve", auth, h.controller.Resolve)
	group.Get("/:id/responses", auth, h.controller.ListResponses)
	group.Post("/:id/responses", auth, h.controller.AddResponse)
	group.Post("/:id/escalate", auth, h.controller.Escalate)
	group.Get("/:id/history", auth, h.controller.GetHistory)
}
