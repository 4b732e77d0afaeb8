package middleware

import (
	"log"

	"filedrop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "token"

// AuthRequired is a Fiber middleware that verifies the session cookie and
// attaches the authenticated user id to the request context. It is a pure
// gate: no side effects beyond attaching identity or rejecting.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			// Missing credential, as opposed to a failed verification below.
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized: no token provided",
			})
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			log.Printf("Token verification failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized: invalid token",
			})
		}

		// Store the authenticated identity for downstream handlers
		c.Locals("user_id", claims.UserID)

		return c.Next()
	}
}
