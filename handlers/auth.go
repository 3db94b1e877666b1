package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"event-booking-api/services"
)

type signupRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *signupRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

func (r *loginRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

func authResponse(message string, res *services.AuthResult) fiber.Map {
	user := res.User.Summary()
	user.CreatedAt = &res.User.CreatedAt
	return fiber.Map{"message": message, "user": user, "token": res.Token}
}

func (h *Handlers) Signup(c *fiber.Ctx) error {
	req := new(signupRequest)
	if err := parseBody(c, req); err != nil {
		return h.fail(c, err)
	}

	res, err := h.svc.Accounts.Signup(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(authResponse("user registered", res))
}

func (h *Handlers) Login(c *fiber.Ctx) error {
	req := new(loginRequest)
	if err := parseBody(c, req); err != nil {
		return h.fail(c, err)
	}

	res, err := h.svc.Accounts.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(authResponse("login successful", res))
}
