package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

func (h *Handlers) Stats(c *fiber.Ctx) error {
	stats, err := h.svc.Admin.Stats(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(stats)
}

func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": h.serviceName})
}

// Ping reports whether the store answers. It always responds 200; storeStatus carries the
// outcome.
func (h *Handlers) Ping(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "connected"
	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("store ping failed")
		status = "disconnected"
	}
	return c.JSON(fiber.Map{"message": "pong", "storeStatus": status})
}
