package complaint_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"seedcare/internal/features/complaint"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeedbackApp(f *fixture) *fiber.App {
	ctrl := complaint.NewComplaintController(f.service)
	app := fiber.New()
	app.Post("/api/complaints/track/:number/feedback", ctrl.SubmitFeedbackByNumber)
	app.Post("/api/complaints/:id/feedback", ctrl.SubmitFeedback)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestSubmitFeedbackHandlers(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
	}{
		{"fractional rating", `{"rating":4.5}`, fiber.StatusBadRequest},
		{"string rating", `{"rating":"5"}`, fiber.StatusBadRequest},
		{"zero rating", `{"rating":0}`, fiber.StatusBadRequest},
		{"rating above five", `{"rating":6}`, fiber.StatusBadRequest},
		{"malformed body", `{"rating":`, fiber.StatusBadRequest},
		{"valid rating", `{"rating":5,"feedback":"Terima kasih"}`, fiber.StatusOK},
	}

	paths := map[string]func(c *complaint.Complaint) string{
		"by number": func(c *complaint.Complaint) string {
			return "/api/complaints/track/" + strings.ToLower(c.ComplaintNumber) + "/feedback"
		},
		"by id": func(c *complaint.Complaint) string {
			return "/api/complaints/" + c.ID.Hex() + "/feedback"
		},
	}

	for route, path := range paths {
		for _, tc := range cases {
			t.Run(route+"/"+tc.name, func(t *testing.T) {
				f := newFixture(t)
				c := f.seed(complaint.StatusResolved)

				code, body := postJSON(t, newFeedbackApp(f), path(c), tc.body)
				assert.Equal(t, tc.code, code)

				stored := f.store.Get(c.ID)
				if tc.code == fiber.StatusOK {
					assert.Equal(t, "success", body["status"])
					assert.Equal(t, c.ComplaintNumber, body["complaint_number"])
					require.NotNil(t, stored.CustomerSatisfactionRating)
					assert.Equal(t, 5, *stored.CustomerSatisfactionRating)
				} else {
					assert.NotEmpty(t, body["error"])
					assert.Nil(t, stored.CustomerSatisfactionRating)
				}
			})
		}
	}
}

func TestSubmitFeedbackByUnknownNumber(t *testing.T) {
	f := newFixture(t)
	f.seed(complaint.StatusResolved)

	code, body := postJSON(t, newFeedbackApp(f), "/api/complaints/track/CMP-20990101-0001/feedback", `{"rating":5}`)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.NotEmpty(t, body["error"])
}
