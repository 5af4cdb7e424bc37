package complaint

import (
	"strconv"

	"seedcare/internal/common/response"
	"seedcare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ComplaintController struct {
	service ComplaintService
}

func NewComplaintController(service ComplaintService) *ComplaintController {
	return &ComplaintController{service: service}
}

type transitionRequest struct {
	Status string `json:"status" validate:"required"`
}

type acknowledgeRequest struct {
	ReplacementQty    *int   `json:"replacement_qty" validate:"required"`
	ReplacementHybrid string `json:"replacement_hybrid" validate:"required"`
}

type responseRequest struct {
	Message    string `json:"message" validate:"required"`
	IsInternal bool   `json:"is_internal"`
}

type escalateRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// Create godoc
// @Summary Submit a complaint
// @Tags complaints
// @Accept json
// @Produce json
// @Param complaint body CreateInput true "Complaint"
// @Success 201 {object} Complaint
// @Router /api/complaints [post]
func (c *ComplaintController) Create(ctx *fiber.Ctx) error {
	var req CreateInput
	if err := response.Bind(ctx, &req); err != nil {
		return response.Error(ctx, err)
	}

	complaint, err := c.service.CreateComplaint(ctx.Context(), req)
	if err != nil {
		return response.Error(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":               complaint.ID.Hex(),
		"complaint_number": complaint.ComplaintNumber,
		"status":           complaint.Status,
	})
}

// Track godoc
// @Summary Track a complaint by number
// @Tags complaints
// @Produce json
// @Param number path string true "Complaint number"
// @Success 200 {object} TrackingView
// @Router /api/complaints/track/{number} [get]
func (c *ComplaintController) Track(ctx *fiber.Ctx) error {
	view, err := c.service.Track(ctx.Context(), ctx.Params("number"))
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(view)
}

// SubmitFeedback godoc
// @Summary Submit customer feedback
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param feedback body FeedbackInput true "Feedback"
// @Success 200 {object} Complaint
// @Router /api/complaints/{id}/feedback [post]
func (c *ComplaintController) SubmitFeedback(ctx *fiber.Ctx) error {
	var req FeedbackInput
	if err := response.Bind(ctx, &req); err != nil {
		return response.Error(ctx, err)
	}

	complaint, err := c.service.SubmitFeedback(ctx.Context(), ctx.Params("id"), req)
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "complaint_number": complaint.ComplaintNumber})
}

// SubmitFeedbackByNumber godoc
// @Summary Submit customer feedback by tracking number
// @Tags complaints
// @Accept json
// @Produce json
// @Param number path string true "Complaint number"
// @Param feedback body FeedbackInput true "Feedback"
// @Success 200 {object} map[string]string
// @Router /api/complaints/track/{number}/feedback [post]
func (c *ComplaintController) SubmitFeedbackByNumber(ctx *fiber.Ctx) error {
	var req FeedbackInput
	if err := response.Bind(ctx, &req); err != nil {
		return response.Error(ctx, err)
	}

	complaint, err := c.service.SubmitFeedbackByNumber(ctx.Context(), ctx.Params("number"), req)
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(fiber.Map{"status": "success", "complaint_number": complaint.ComplaintNumber})
}

// List godoc
// @Summary List complaints
// @Tags complaints
// @Produce json
// @Param status query string false "Status"
// @Param priority query string false "Priority"
// @Param department query string false "Department"
// @Param assigned_to query string false "Assignee user ID"
// @Param search query string false "Search number, customer or serial"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} map[string]interface{}
// @Router /api/complaints [get]
func (c *ComplaintController) List(ctx *fiber.Ctx) error {
	page, _ := strconv.ParseInt(ctx.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(ctx.Query("limit", "20"), 10, 64)

	sortOrder := -1
	if ctx.Query("sort_order") == "asc" {
		sortOrder = 1
	}

	filter := ListFilter{
		Status:     Status(ctx.Query("status")),
		Priority:   Priority(ctx.Query("priority")),
		Department: ctx.Query("department"),
		AssignedTo: ctx.Query("assigned_to"),
		Search:     ctx.Query("search"),
		SortBy:     ctx.Query("sort_by"),
		SortOrder:  sortOrder,
	}

	complaints, total, err := c.service.ListComplaints(ctx.Context(), filter, page, limit)
	if err != nil {
		return response.Error(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"data":  complaints,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// Get godoc
// @Summary Get a complaint
// @Tags complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} Complaint
// @Router /api/complaints/{id} [get]
func (c *ComplaintController) Get(ctx *fiber.Ctx) error {
	complaint, err := c.service.GetComplaint(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(complaint)
}

// UpdateStatus godoc
// @Summary Change complaint status
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} Complaint
// @Router /api/complaints/{id}/status [put]
func (c *ComplaintController) UpdateStatus(ctx *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	var req transitionRequest
	if err := response.Bind(ctx, &req); err != nil {
		return response.Error(ctx, err)
	}

	complaint, err := c.service.Transition(ctx.Context(), ctx.Params("id"), req.Status, actor)
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(complaint)
}

// Acknowledge godoc
// @Summary Acknowledge a complaint with the agreed replacement
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} Complaint
// @Router /api/complaints/{id}/acknowledge [post]
func (c *ComplaintController) Acknowledge(ctx *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	var req acknowledgeRequest
	if err := response.Bind(ctx, &req); err != nil {
		return response.Error(ctx, err)
	}

	complaint, err := c.service.AcknowledgeWithReplacement(ctx.Context(), ctx.Params("id"), req.ReplacementQty, req.ReplacementHybrid, actor)
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(complaint)
}

// Resolve godoc
// @Summary Resolve a complaint
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param resolution body ResolveInput true "Resolution"
// @Success 200 {object} Complaint
// @Router /api/complaints/{id}/resolve [post]
func (c *ComplaintController) Resolve(ctx *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	var req ResolveInput
	if err := response.Bind(ctx, &req); err != nil {
		return response.Error(ctx, err)
	}

	complaint, err := c.service.Resolve(ctx.Context(), ctx.Params("id"), req, actor)
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(complaint)
}

// AddResponse godoc
// @Summary Reply to the customer or add an internal note
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 201 {object} Response
// @Router /api/complaints/{id}/responses [post]
func (c *ComplaintController) AddResponse(ctx *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	var req responseRequest
	if err := response.Bind(ctx, &req); err != nil {
		return response.Error(ctx, err)
	}

	resp, err := c.service.AddResponse(ctx.Context(), ctx.Params("id"), req.Message, req.IsInternal, actor)
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(resp)
}

// ListResponses godoc
func (c *ComplaintController) ListResponses(ctx *fiber.Ctx) error {
	responses, err := c.service.ListResponses(ctx.Context(), ctx.Params("id"), ctx.QueryBool("include_internal", true))
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(responses)
}

// Escalate godoc
// @Summary Escalate a complaint
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} Complaint
// @Router /api/complaints/{id}/escalate [post]
func (c *ComplaintController) Escalate(ctx *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	var req escalateRequest
	if err := response.Bind(ctx, &req); err != nil {
		return response.Error(ctx, err)
	}

	complaint, err := c.service.Escalate(ctx.Context(), ctx.Params("id"), req.Reason, actor)
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(complaint)
}

// GetHistory godoc
// @Summary Complaint history
// @Tags complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {array} HistoryEntry
// @Router /api/complaints/{id}/history [get]
func (c *ComplaintController) GetHistory(ctx *fiber.Ctx) error {
	history, err := c.service.GetHistory(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(history)
}
