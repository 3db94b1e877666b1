package handlers

import (
	"github.com/gofiber/fiber/v2"

	"event-booking-api/middleware"
)

func (h *Handlers) CreateBooking(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.fail(c, err)
	}
	eventID, err := paramID(c, "eventId")
	if err != nil {
		return h.fail(c, err)
	}

	booking, err := h.svc.Ledger.Book(c.UserContext(), userID, eventID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "booking successful", "booking": booking})
}

func (h *Handlers) ListBookings(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.fail(c, err)
	}

	bookings, err := h.svc.Ledger.List(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(bookings)
}

func (h *Handlers) CancelBooking(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.fail(c, err)
	}
	bookingID, err := paramID(c, "bookingId")
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.svc.Ledger.Cancel(c.UserContext(), userID, bookingID); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "booking cancelled"})
}
