package middleware

import (
	"strings"

	"seedcare/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// RequireRole checks if the user has one of the given roles. Must run after AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		if len(claims.Roles) == 0 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied: No roles assigned",
			})
		}

		for _, have := range claims.Roles {
			for _, want := range roles {
				if strings.EqualFold(have, want) {
					return c.Next()
				}
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied: " + strings.Join(roles, " or ") + " role required",
		})
	}
}
