package assignment_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"seedcare/internal/features/assignment"
	"seedcare/internal/features/complaint"
	"seedcare/internal/features/staff"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func autoAssign(t *testing.T, f *fixture, id, body string) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Post("/api/complaints/:id/auto-assign", assignment.NewAssignmentController(f.service).AutoAssign)

	req := httptest.NewRequest("POST", "/api/complaints/"+id+"/auto-assign", strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestAutoAssignHandler(t *testing.T) {
	cases := []struct {
		name       string
		profiles   []staff.Profile
		body       string
		code       int
		reason     string
		department string
	}{
		{
			name:       "everyone at capacity",
			profiles:   []staff.Profile{staffProfile("a", "customer_service", 3, 3, 4.0)},
			code:       fiber.StatusConflict,
			reason:     "all_at_capacity",
			department: "customer_service",
		},
		{
			name:       "no active staff in requested department",
			profiles:   []staff.Profile{staffProfile("a", "customer_service", 0, 3, 4.0)},
			body:       `{"department":"lab_tasting"}`,
			code:       fiber.StatusConflict,
			reason:     "no_active_staff",
			department: "lab_tasting",
		},
		{
			name:     "capacity available",
			profiles: []staff.Profile{staffProfile("a", "customer_service", 1, 3, 4.0)},
			code:     fiber.StatusOK,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.profiles...)
			c := f.seed(complaint.StatusSubmitted, "customer_service")

			code, body := autoAssign(t, f, c.ID.Hex(), tc.body)
			assert.Equal(t, tc.code, code)

			if tc.code == fiber.StatusOK {
				assert.Equal(t, "a", body["assignee_id"])
				return
			}
			assert.Equal(t, tc.reason, body["reason"])
			assert.Equal(t, tc.department, body["department"])
			assert.NotEmpty(t, body["error"])
			assert.Nil(t, f.complaints.Get(c.ID).AssignedTo)
			assert.Empty(t, f.records.active(c.ID))
		})
	}
}

func TestAutoAssignHandlerRejectsOwnedComplaint(t *testing.T) {
	f := newFixture(t, staffProfile("a", "customer_service", 0, 3, 4.0))
	c := f.seed(complaint.StatusSubmitted, "customer_service")

	code, _ := autoAssign(t, f, c.ID.Hex(), "")
	require.Equal(t, fiber.StatusOK, code)

	code, body := autoAssign(t, f, c.ID.Hex(), "")
	assert.Equal(t, fiber.StatusConflict, code)
	assert.NotContains(t, body, "reason")
}
