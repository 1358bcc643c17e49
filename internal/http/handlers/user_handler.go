package handlers

import (
	"errors"

	applog "shopline/internal/log"
	"shopline/internal/services"
	"shopline/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Identity *services.IdentityService
}

type profileUpdateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GET /api/users/profile
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	u := currentUser(c)
	p, err := h.Identity.GetOwnProfile(u.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		applog.Error(c, "user.profile.error", err, nil)
		return fiber.ErrInternalServerError
	}
	return c.JSON(p)
}

// PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	u := currentUser(c)

	var req profileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot parse body"})
	}
	// Empty fields mean "leave unchanged"; provided fields must be valid.
	if req.Email != "" {
		if _, ok := validate.Email(req.Email); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid email"})
		}
	}
	if req.Name != "" {
		if _, ok := validate.Name(req.Name); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name"})
		}
	}
	if req.Password != "" && !validate.Password(req.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "password too weak"})
	}

	sess, err := h.Identity.UpdateOwnProfile(u.ID, services.ProfilePatch{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		case errors.Is(err, services.ErrDuplicateEmail):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email already registered"})
		}
		applog.Error(c, "user.profile.update.error", err, nil)
		return fiber.ErrInternalServerError
	}

	applog.Audit(c, "user.profile.update", map[string]any{"user_id": u.ID})
	return c.JSON(sess)
}
