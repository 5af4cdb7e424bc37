package middleware_test

import (
	"net/http/httptest"
	"testing"

	"seedcare/internal/middleware"
	"seedcare/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(skipAuth bool, roles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{middleware.AuthMiddleware(skipAuth)}
	if len(roles) > 0 {
		handlers = append(handlers, middleware.RequireRole(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		actor, err := middleware.CurrentActor(c)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(actor.Label())
	})
	app.Get("/", handlers...)
	return app
}

func get(t *testing.T, app *fiber.App, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := make([]byte, 256)
	n, _ := resp.Body.Read(buf)
	return resp.StatusCode, string(buf[:n])
}

func TestAuthMiddleware(t *testing.T) {
	utils.SetSecret("test-secret")
	token, err := utils.GenerateToken("staff-7", []string{"agent"})
	require.NoError(t, err)

	app := newApp(false)

	code, body := get(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "staff-7", body)

	code, _ = get(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, _ = get(t, app, token)
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, _ = get(t, app, "Bearer not-a-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestAuthMiddlewareSkipAuth(t *testing.T) {
	code, body := get(t, newApp(true, "admin"), "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, middleware.DevUserID, body)
}

func TestRequireRole(t *testing.T) {
	utils.SetSecret("test-secret")
	agent, err := utils.GenerateToken("staff-7", []string{"agent"})
	require.NoError(t, err)
	admin, err := utils.GenerateToken("boss", []string{"Admin"})
	require.NoError(t, err)
	none, err := utils.GenerateToken("nobody", nil)
	require.NoError(t, err)

	app := newApp(false, "admin")

	code, _ := get(t, app, "Bearer "+agent)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = get(t, app, "Bearer "+none)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, body := get(t, app, "Bearer "+admin)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "boss", body)
}
