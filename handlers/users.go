package handlers

import (
	"github.com/gofiber/fiber/v2"

	"event-booking-api/errors"
	"event-booking-api/middleware"
	"event-booking-api/model"
	"event-booking-api/services"
)

type profileRequest struct {
	Name     *string `json:"name" validate:"omitempty,notblank,max=100"`
	Password *string `json:"password" validate:"omitempty,min=6,maxbytes=72"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.fail(c, err)
	}

	user, err := h.svc.Accounts.Profile(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(user)
}

func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.fail(c, err)
	}

	req := new(profileRequest)
	if err := parseBody(c, req); err != nil {
		return h.fail(c, err)
	}
	if req.Name == nil && req.Password == nil {
		return h.fail(c, errors.Validation("nothing to update"))
	}

	user, err := h.svc.Accounts.UpdateProfile(c.UserContext(), userID, services.ProfileUpdate{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "profile updated", "user": user})
}

func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	users, err := h.svc.Accounts.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(users)
}

func (h *Handlers) SetUserRole(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	req := new(roleRequest)
	if err := parseBody(c, req); err != nil {
		return h.fail(c, err)
	}

	user, err := h.svc.Accounts.SetRole(c.UserContext(), id, model.Role(req.Role))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "role updated", "user": user})
}

func (h *Handlers) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.svc.Accounts.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "user deleted"})
}
