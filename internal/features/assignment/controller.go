package assignment

import (
	"seedcare/internal/common/response"
	"seedcare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AssignmentController struct {
	service AssignmentService
}

func NewAssignmentController(service AssignmentService) *AssignmentController {
	return &AssignmentController{service: service}
}

// Assign godoc
// @Summary Assign a complaint to a staff member
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param assignment body AssignInput true "Assignment"
// @Success 200 {object} AssignResult
// @Router /api/complaints/{id}/assign [post]
func (c *AssignmentController) Assign(ctx *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	var req AssignInput
	if err := response.Bind(ctx, &req); err != nil {
		return response.Error(ctx, err)
	}

	result, err := c.service.Assign(ctx.Context(), ctx.Params("id"), req, actor)
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(result)
}

// AutoAssign godoc
// @Summary Assign a complaint to the least loaded staff member
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} AssignResult
// @Failure 409 {object} map[string]interface{}
// @Router /api/complaints/{id}/auto-assign [post]
func (c *AssignmentController) AutoAssign(ctx *fiber.Ctx) error {
	var req AutoAssignInput
	if len(ctx.Body()) > 0 {
		if err := response.Bind(ctx, &req); err != nil {
			return response.Error(ctx, err)
		}
	}

	result, err := c.service.AutoAssign(ctx.Context(), ctx.Params("id"), req)
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(result)
}

// Unassign godoc
// @Summary Remove the owner of a complaint
// @Tags assignments
// @Produce json
// @Param id path string true "Complaint ID"
// @Router /api/complaints/{id}/unassign [post]
func (c *AssignmentController) Unassign(ctx *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	complaint, err := c.service.Unassign(ctx.Context(), ctx.Params("id"), actor)
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(complaint)
}

func (c *AssignmentController) ListHistory(ctx *fiber.Ctx) error {
	records, err := c.service.ListAssignmentHistory(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(records)
}

// Workload godoc
// @Summary Workload of a department
// @Tags staff
// @Produce json
// @Param department path string true "Department"
// @Success 200 {object} Workload
// @Router /api/staff/workload/{department} [get]
func (c *AssignmentController) Workload(ctx *fiber.Ctx) error {
	workload, err := c.service.DepartmentWorkload(ctx.Context(), ctx.Params("department"))
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(workload)
}
