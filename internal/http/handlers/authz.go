package handlers

import (
	"strings"

	"shopline/internal/auth"
	"shopline/internal/domain"
	applog "shopline/internal/log"
	"shopline/internal/repos"

	"github.com/gofiber/fiber/v2"
)

func bearerToken(c *fiber.Ctx) string {
	parts := strings.SplitN(c.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// resolveUser classifies the request: a verifiable, non-expired token whose
// subject still exists resolves to that user; anything else is nil.
func resolveUser(c *fiber.Ctx, tokens *auth.Tokens, users *repos.UserRepo) *domain.User {
	tok := bearerToken(c)
	if tok == "" {
		applog.Security(c, "access.denied.token", map[string]any{"reason": "missing"})
		return nil
	}
	uid, err := tokens.Verify(tok)
	if err != nil {
		applog.Security(c, "access.denied.token", map[string]any{"reason": "invalid"})
		return nil
	}
	u, err := users.ByID(uid)
	if err != nil || u == nil {
		applog.Security(c, "access.denied.token", map[string]any{"reason": "unknown_user"})
		return nil
	}
	return u
}

// RequireUser rejects requests without a valid bearer token and attaches the
// resolved acting user to the request context for downstream handlers.
func RequireUser(tokens *auth.Tokens, users *repos.UserRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := resolveUser(c, tokens, users)
		if u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireAdmin additionally rejects authenticated users without the admin
// flag; the failure is distinct from an authentication failure.
func RequireAdmin(tokens *auth.Tokens, users *repos.UserRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := resolveUser(c, tokens, users)
		if u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
		}
		if !u.IsAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": u.ID})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
