package digest

import (
	"seedcare/internal/common/response"

	"github.com/gofiber/fiber/v2"
)

type DigestController struct {
	service DigestService
}

func NewDigestController(service DigestService) *DigestController {
	return &DigestController{service: service}
}

// ListSnapshots godoc
// @Summary Stored analytics snapshots, newest first
// @Tags analytics
// @Produce json
// @Param limit query int false "Limit (default 30)"
// @Success 200 {array} Snapshot
// @Router /api/analytics/snapshots [get]
func (c *DigestController) ListSnapshots(ctx *fiber.Ctx) error {
	snapshots, err := c.service.ListSnapshots(ctx.Context(), int64(ctx.QueryInt("limit", 30)))
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(snapshots)
}

// Run godoc
// @Summary Compute and store an analytics snapshot now
// @Tags analytics
// @Produce json
// @Success 201 {object} Snapshot
// @Router /api/analytics/snapshots/run [post]
func (c *DigestController) Run(ctx *fiber.Ctx) error {
	snapshot, err := c.service.Run(ctx.Context(), TriggerManual)
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(snapshot)
}
