package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindfulway/intake-backend/internal/config"
	"github.com/mindfulway/intake-backend/internal/services"
	"github.com/mindfulway/intake-backend/internal/types"
)

// AuthAdmin validates that the request carries an admin authorizer session.
// Deployments without an authorizer (AUTHZ_URL unset) leave admin routes
// open; the SPA carries its own login in that mode.
func AuthAdmin(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.AdminAuthEnabled() {
			return c.Next()
		}
		return authorize(c, cfg, []string{"admin"}, "data.authorization.admin")
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, cfg *config.Config, roles []string, errorType string) error {
	if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
		return types.NewCustomError(fiber.StatusServiceUnavailable, errorType,
			"Authorizer unavailable: %v", err)
	}

	session := c.Cookies("cookie_session")
	if session == "" {
		return types.NewCustomError(fiber.StatusForbidden, errorType,
			"Authorizer cookie %q not found", "cookie_session")
	}

	user, err := services.ValidateSession(session, roles)
	if err != nil {
		return types.NewCustomError(fiber.StatusForbidden, errorType,
			"Invalid session: %v", err)
	}
	if user != nil {
		c.Locals("user", user)
	}

	return c.Next()
}
