package handlers

import (
	applog "stockroom/internal/log"
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	Inv   *services.InventoryService
	Stats *services.StatsService
}

func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in services.InventoryInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, services.BadRequest("Invalid inventory data format."))
	}
	inv, err := h.Inv.Create(currentUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "inventory.create", map[string]any{"id": inv.ID})
	return c.Status(fiber.StatusCreated).JSON(inv.DTO())
}

func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.Inv.All()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	inv, err := h.Inv.ByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(inv.DTO())
}

func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	var in services.InventoryInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, services.BadRequest("Invalid inventory data format."))
	}
	inv, err := h.Inv.Update(id, currentUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "inventory.update", map[string]any{"id": id})
	return c.JSON(inv.DTO())
}

func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.Inv.Delete(id, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "inventory.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"message": "Inventory deleted successfully"})
}

func (h *InventoryHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.Stats.InventoryStatistics()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}
