package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/ievms-go-api/internal/utils"
)

// RequireRole ensures that the authenticated user holds one of the allowed
// roles. It must run after JWTProtected. The rejection names both the
// required role set and the caller's actual role.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	normalized := make([]string, 0, len(roles))
	for _, role := range roles {
		role = strings.ToUpper(strings.TrimSpace(role))
		if role == "" {
			continue
		}
		allowed[role] = struct{}{}
		normalized = append(normalized, role)
	}

	required := strings.Join(normalized, " or ")

	return func(c *fiber.Ctx) error {
		role := normalizeRoleValue(c.Locals(LocalsUserRole))
		if role == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "Authentication required.")
		}

		if _, ok := allowed[role]; !ok {
			message := fmt.Sprintf("Access denied. Required role: %s. Your role: %s", required, role)
			return utils.SendError(c, fiber.StatusForbidden, message)
		}

		return c.Next()
	}
}

func normalizeRoleValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.ToUpper(strings.TrimSpace(v))
	case fmt.Stringer:
		return strings.ToUpper(strings.TrimSpace(v.String()))
	default:
		if value == nil {
			return ""
		}
		return strings.ToUpper(strings.TrimSpace(fmt.Sprintf("%v", value)))
	}
}
