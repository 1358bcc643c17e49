package handlers

import (
	"errors"

	applog "shopline/internal/log"
	"shopline/internal/services"
	"shopline/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Identity *services.IdentityService
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/users/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot parse body"})
	}
	if _, ok := validate.Email(req.Email); !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}

	sess, err := h.Identity.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
		}
		applog.Error(c, "auth.login.error", err, nil)
		return fiber.ErrInternalServerError
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": req.Email})
	return c.JSON(sess)
}

// POST /api/users
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot parse body"})
	}
	email, okEmail := validate.Email(req.Email)
	name, okName := validate.Name(req.Name)
	if !okEmail || !okName || !validate.Password(req.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user data"})
	}

	sess, err := h.Identity.Register(name, email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateEmail):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email already registered"})
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user data"})
		}
		applog.Error(c, "auth.register.error", err, nil)
		return fiber.ErrInternalServerError
	}

	applog.Audit(c, "auth.register.success", map[string]any{"email": email, "user_id": sess.ID})
	return c.Status(fiber.StatusCreated).JSON(sess)
}
