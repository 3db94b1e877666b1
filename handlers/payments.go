package handlers

import (
	"github.com/gofiber/fiber/v2"

	"event-booking-api/middleware"
)

func (h *Handlers) Pay(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.fail(c, err)
	}
	bookingID, err := paramID(c, "bookingId")
	if err != nil {
		return h.fail(c, err)
	}

	payment, err := h.svc.Payments.Pay(c.UserContext(), userID, bookingID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "payment successful", "payment": payment})
}

func (h *Handlers) ListPayments(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.fail(c, err)
	}
	bookingID, err := paramID(c, "bookingId")
	if err != nil {
		return h.fail(c, err)
	}

	payments, err := h.svc.Payments.ForBooking(c.UserContext(), userID, bookingID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(payments)
}
