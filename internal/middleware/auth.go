package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moodlog/api/internal/services"
)

// UserIDKey is the Locals key holding the authenticated user's id.
const UserIDKey = "userID"

// AuthRequired validates the session cookie and stores the resolved user id
// in the request context. Missing, invalid, or expired sessions fail with
// Unauthenticated.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := services.ResolveToken(c.Cookies(services.SessionCookieName))
		if err != nil {
			return err
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// AuthOptional resolves the session cookie when present and valid; otherwise
// the request proceeds anonymously.
func AuthOptional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, err := services.ResolveToken(c.Cookies(services.SessionCookieName)); err == nil {
			c.Locals(UserIDKey, userID)
		}
		return c.Next()
	}
}

// UserID extracts the authenticated user id set by AuthRequired. The second
// return is false for anonymous requests.
func UserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals(UserIDKey).(uint)
	return userID, ok && userID != 0
}
