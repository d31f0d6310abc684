package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "tillpoint/internal/log"
	"tillpoint/internal/services"
	"tillpoint/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return status(c, fiber.StatusBadRequest, "invalid_name")
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return status(c, fiber.StatusBadRequest, "invalid_price")
	}
	stock, ok := validate.Stock(c.FormValue("stock"))
	if !ok {
		return status(c, fiber.StatusBadRequest, "invalid_stock")
	}

	p, err := h.Catalog.Create(name, price, stock)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return status(c, fiber.StatusBadRequest, "invalid_product_id")
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return status(c, fiber.StatusBadRequest, "invalid_name")
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return status(c, fiber.StatusBadRequest, "invalid_price")
	}
	stock, ok := validate.Stock(c.FormValue("stock"))
	if !ok {
		return status(c, fiber.StatusBadRequest, "invalid_stock")
	}

	if err := h.Catalog.Update(id, name, price, stock); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return status(c, fiber.StatusBadRequest, "invalid_product_id")
	}
	if err := h.Catalog.Delete(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
