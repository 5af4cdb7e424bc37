package staff

import (
	"seedcare/internal/common/response"

	"github.com/gofiber/fiber/v2"
)

type StaffController struct {
	service StaffService
}

func NewStaffController(service StaffService) *StaffController {
	return &StaffController{service: service}
}

type createProfileRequest struct {
	UserID                string          `json:"user_id" validate:"required"`
	FullName              string          `json:"full_name" validate:"required"`
	Email                 string          `json:"email" validate:"omitempty,email"`
	Department            string          `json:"department" validate:"required"`
	ComplaintPermissions  map[string]bool `json:"complaint_permissions"`
	MaxAssignedComplaints int             `json:"max_assigned_complaints" validate:"min=0"`
	IsActive              *bool           `json:"is_active"`
}

// List godoc
// @Summary List staff profiles
// @Tags staff
// @Produce json
// @Param department query string false "Department"
// @Param active query bool false "Only active profiles"
// @Success 200 {array} Profile
// @Router /api/staff [get]
func (c *StaffController) List(ctx *fiber.Ctx) error {
	profiles, err := c.service.ListProfiles(ctx.Context(), ListFilter{
		Department: ctx.Query("department"),
		ActiveOnly: ctx.QueryBool("active", false),
	})
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(profiles)
}

// Get godoc
// @Summary Get a staff profile
// @Tags staff
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} Profile
// @Router /api/staff/{userId} [get]
func (c *StaffController) Get(ctx *fiber.Ctx) error {
	profile, err := c.service.GetProfile(ctx.Context(), ctx.Params("userId"))
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(profile)
}

// Create godoc
// @Summary Create a staff profile
// @Tags staff
// @Accept json
// @Produce json
// @Success 201 {object} Profile
// @Router /api/staff [post]
func (c *StaffController) Create(ctx *fiber.Ctx) error {
	var req createProfileRequest
	if err := response.Bind(ctx, &req); err != nil {
		return response.Error(ctx, err)
	}

	profile := &Profile{
		UserID:                req.UserID,
		FullName:              req.FullName,
		Email:                 req.Email,
		Department:            req.Department,
		ComplaintPermissions:  req.ComplaintPermissions,
		MaxAssignedComplaints: req.MaxAssignedComplaints,
		IsActive:              req.IsActive == nil || *req.IsActive,
	}
	if err := c.service.CreateProfile(ctx.Context(), profile); err != nil {
		return response.Error(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(profile)
}

// Update godoc
// @Summary Update a staff profile
// @Tags staff
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} Profile
// @Router /api/staff/{userId} [put]
func (c *StaffController) Update(ctx *fiber.Ctx) error {
	var req ProfileUpdate
	if err := response.Bind(ctx, &req); err != nil {
		return response.Error(ctx, err)
	}

	profile, err := c.service.UpdateProfile(ctx.Context(), ctx.Params("userId"), req)
	if err != nil {
		return response.Error(ctx, err)
	}
	return ctx.JSON(profile)
}
