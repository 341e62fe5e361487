package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/ievms-go-api/internal/token"
	"github.com/noah-isme/ievms-go-api/internal/utils"
)

// Locals keys populated by JWTProtected for downstream handlers.
const (
	LocalsUserID    = "user_id"
	LocalsUserEmail = "user_email"
	LocalsUserRole  = "user_role"
)

// JWTProtected returns a middleware that validates bearer tokens and attaches
// the resolved identity to the request context.
func JWTProtected(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "Authentication required.")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "Invalid authorization header.")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "Invalid token.")
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "Invalid token.")
		}

		c.Locals(LocalsUserID, claims.UserID)
		c.Locals(LocalsUserEmail, claims.Email)
		c.Locals(LocalsUserRole, claims.Role)

		return c.Next()
	}
}

// CurrentUserID returns the authenticated user id bound to the request, if any.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(LocalsUserID).(uint)
	return id, ok
}
