package handlers

import (
	applog "stockroom/internal/log"
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Prod  *services.ProductService
	Stats *services.StatsService
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, services.BadRequest("Invalid product data format."))
	}
	p, err := h.Prod.Create(currentUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.create", map[string]any{"id": p.ID, "sku": p.SKU})
	return c.Status(fiber.StatusCreated).JSON(p.DTO())
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.Prod.All()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	p, err := h.Prod.ByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p.DTO())
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, services.BadRequest("Invalid product data format."))
	}
	p, err := h.Prod.Update(id, currentUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.update", map[string]any{"id": id})
	return c.JSON(p.DTO())
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.Prod.Delete(id, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

func (h *ProductHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.Stats.ProductStatistics()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}
