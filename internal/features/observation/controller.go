package observation

import (
	"seedcare/internal/common/response"
	"seedcare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ObservationController struct {
	service ObservationService
}

func NewObservationController(service ObservationService) *ObservationController {
	return &ObservationController{service: service}
}

// SaveObservation godoc
// @Summary Record the field observation of a complaint
// @Tags observations
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param observation body ObservationRecord true "Observation"
// @Success 200 {object} ObservationView
// @Router /api/complaints/{id}/observation [put]
func (c *ObservationController) SaveObservation(ctx *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	var req ObservationRecord
	if err := response.Bind(ctx, &req); err != nil {
		return response.Error(ctx, err)
	}

	view, err := c.service.SaveObservation(ctx.Context(), ctx.Params("id"), &req, actor)
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(view)
}

// GetObservation godoc
// @Summary Observation of a complaint with its summary
// @Tags observations
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} ObservationView
// @Router /api/complaints/{id}/observation [get]
func (c *ObservationController) GetObservation(ctx *fiber.Ctx) error {
	view, err := c.service.GetObservation(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(view)
}

// SaveInvestigation godoc
// @Summary Record the investigation of a complaint
// @Tags observations
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param investigation body InvestigationRecord true "Investigation"
// @Success 200 {object} InvestigationRecord
// @Router /api/complaints/{id}/investigation [put]
func (c *ObservationController) SaveInvestigation(ctx *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	var req InvestigationRecord
	if err := response.Bind(ctx, &req); err != nil {
		return response.Error(ctx, err)
	}

	record, err := c.service.SaveInvestigation(ctx.Context(), ctx.Params("id"), &req, actor)
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(record)
}

func (c *ObservationController) GetInvestigation(ctx *fiber.Ctx) error {
	record, err := c.service.GetInvestigation(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(record)
}

// SaveLabTesting godoc
// @Summary Record lab testing of market and guard samples
// @Tags observations
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param lab body LabTestingRecord true "Lab testing"
// @Success 200 {object} LabTestingRecord
// @Router /api/complaints/{id}/lab-testing [put]
func (c *ObservationController) SaveLabTesting(ctx *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	var req LabTestingRecord
	if err := response.Bind(ctx, &req); err != nil {
		return response.Error(ctx, err)
	}

	record, err := c.service.SaveLabTesting(ctx.Context(), ctx.Params("id"), &req, actor)
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(record)
}

func (c *ObservationController) GetLabTesting(ctx *fiber.Ctx) error {
	record, err := c.service.GetLabTesting(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(record)
}
