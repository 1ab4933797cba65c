package auth

import (
	"github.com/gofiber/fiber/v2"
)

// ClaimsFromCtx extracts the verified claims the guard stashed for this
// request. Handlers behind RequireIdentity can rely on the second
// return value being true.
func ClaimsFromCtx(c *fiber.Ctx, key string) (AuthClaims, bool) {
	if key == "" {
		key = "user"
	}
	raw := c.Locals(key)
	if raw == nil {
		return nil, false
	}
	claims, ok := raw.(AuthClaims)
	return claims, ok
}
