package handlers

import (
	"github.com/gofiber/fiber/v2"

	"event-booking-api/errors"
	"event-booking-api/model"
	"event-booking-api/services"
)

type eventRequest struct {
	Title       string   `json:"title" validate:"required,notblank,max=200"`
	Description string   `json:"description" validate:"required,notblank,max=5000"`
	Date        string   `json:"date" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
}

type eventUpdateRequest struct {
	Title       *string  `json:"title" validate:"omitempty,notblank,max=200"`
	Description *string  `json:"description" validate:"omitempty,notblank,max=5000"`
	Date        *string  `json:"date" validate:"omitempty,notblank"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

func (h *Handlers) ListEvents(c *fiber.Ctx) error {
	events, err := h.svc.Catalog.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(events)
}

func (h *Handlers) GetEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}

	event, err := h.svc.Catalog.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(event)
}

func (h *Handlers) CreateEvent(c *fiber.Ctx) error {
	req := new(eventRequest)
	if err := parseBody(c, req); err != nil {
		return h.fail(c, err)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return h.fail(c, err)
	}

	event, err := h.svc.Catalog.Create(c.UserContext(), services.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Price:       *req.Price,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (h *Handlers) UpdateEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	req := new(eventUpdateRequest)
	if err := parseBody(c, req); err != nil {
		return h.fail(c, err)
	}

	update := model.EventUpdate{Title: req.Title, Description: req.Description, Price: req.Price}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return h.fail(c, err)
		}
		update.Date = &date
	}
	if update == (model.EventUpdate{}) {
		return h.fail(c, errors.Validation("nothing to update"))
	}

	event, err := h.svc.Catalog.Update(c.UserContext(), id, update)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(event)
}

func (h *Handlers) DeleteEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.svc.Catalog.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "event deleted"})
}

