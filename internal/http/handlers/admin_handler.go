package handlers

import (
	"errors"

	applog "shopline/internal/log"
	"shopline/internal/services"
	"shopline/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Identity *services.IdentityService
}

type adminUpdateRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin *bool  `json:"isAdmin"`
}

// GET /api/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	profiles, err := h.Identity.ListUsers()
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return fiber.ErrInternalServerError
	}
	return c.JSON(profiles)
}

// GET /api/users/:id
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	p, err := h.Identity.GetUserByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		applog.Error(c, "admin.users.get.fail", err, map[string]any{"target_id": id})
		return fiber.ErrInternalServerError
	}
	return c.JSON(p)
}

// PUT /api/users/:id
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	var req adminUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot parse body"})
	}
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

	p, err := h.Identity.AdminUpdateUser(id, services.AdminPatch{
		Name:    req.Name,
		Email:   req.Email,
		IsAdmin: req.IsAdmin,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		case errors.Is(err, services.ErrDuplicateEmail):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email already registered"})
		}
		applog.Error(c, "admin.users.update.fail", err, map[string]any{"target_id": id})
		return fiber.ErrInternalServerError
	}

	applog.Audit(c, "admin.users.update", map[string]any{"target_id": id, "is_admin": p.IsAdmin})
	return c.JSON(p)
}

// DELETE /api/users/:id
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	if err := h.Identity.DeleteUser(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		applog.Error(c, "admin.users.delete.fail", err, map[string]any{"target_id": id})
		return fiber.ErrInternalServerError
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"target_id": id})
	return c.JSON(fiber.Map{"message": "user removed"})
}
