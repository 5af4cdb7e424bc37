package analytics

import (
	"strconv"

	"seedcare/internal/common/apperror"
	"seedcare/internal/common/response"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsController struct {
	service AnalyticsService
}

func NewAnalyticsController(service AnalyticsService) *AnalyticsController {
	return &AnalyticsController{service: service}
}

func periodDays(ctx *fiber.Ctx) (int, error) {
	raw := ctx.Query("period_days")
	if raw == "" {
		return DefaultPeriodDays, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Validation("period_days must be a number")
	}
	return n, nil
}

// GetReport godoc
// @Summary Complaint analytics for a period
// @Tags analytics
// @Produce json
// @Param period_days query int false "Period in days (default 30)"
// @Success 200 {object} Report
// @Router /api/analytics/complaints [get]
func (c *AnalyticsController) GetReport(ctx *fiber.Ctx) error {
	days, err := periodDays(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	report, err := c.service.GetReport(ctx.Context(), days)
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(report)
}

// Export godoc
// @Summary Download complaint analytics as an Excel workbook
// @Tags analytics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param period_days query int false "Period in days (default 30)"
// @Router /api/analytics/complaints/export [get]
func (c *AnalyticsController) Export(ctx *fiber.Ctx) error {
	days, err := periodDays(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	data, filename, err := c.service.ExportReport(ctx.Context(), days)
	if err != nil {
		return response.Error(ctx, err)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", "attachment; filename="+filename)
	return ctx.Send(data)
}
