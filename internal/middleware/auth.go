package middleware

import (
	"seedcare/internal/common/apperror"
	"seedcare/internal/common/models"
	"seedcare/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// DevUserID is the actor injected when SKIP_AUTH is enabled
const DevUserID = "dev-admin-id"

// AuthMiddleware validates JWT tokens and injects user claims into context
func AuthMiddleware(skipAuth bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipAuth {
			// Inject dummy context for dev
			dummyClaims := &utils.UserClaims{
				UserID: DevUserID,
				Roles:  []string{"admin"},
			}
			c.Locals(utils.UserClaimsKey, dummyClaims)
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		// Extract token from "Bearer <token>"
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		token := authHeader[7:]
		claims, err := utils.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(utils.UserClaimsKey, claims)
		return c.Next()
	}
}

// CurrentUserID returns the authenticated user id or ErrUnauthorized
func CurrentUserID(c *fiber.Ctx) (string, error) {
	claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok || claims.UserID == "" {
		return "", apperror.ErrUnauthorized
	}
	return claims.UserID, nil
}

// CurrentActor resolves the human actor performing the request
func CurrentActor(c *fiber.Ctx) (models.Actor, error) {
	userID, err := CurrentUserID(c)
	if err != nil {
		return models.SystemActor, err
	}
	return models.HumanActor(userID), nil
}
