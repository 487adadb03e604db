package handlers

import (
	"errors"

	applog "stockroom/internal/log"
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

// fail maps expected service failures to their status and everything else to
// a generic 500 that leaks nothing.
func fail(c *fiber.Ctx, err error) error {
	var se *services.StatusError
	if errors.As(err, &se) {
		return c.Status(se.Status).JSON(fiber.Map{"error": se.Message})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Something went wrong. Please try again.",
	})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, services.BadRequest("Invalid id")
	}
	return int64(id), nil
}
