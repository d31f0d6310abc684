package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "tillpoint/internal/log"
	"tillpoint/internal/repos"
	"tillpoint/internal/staging"
	"tillpoint/internal/validate"
)

// CartHandler marshals operator actions into ledger calls and renders the
// resulting cart or error. No staging rule lives in here.
type CartHandler struct {
	Sessions *staging.Registry
	Products *repos.ProductRepo
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{Name: "sid", Value: sid, Path: "/", HTTPOnly: true})
	}
	return sid
}

// session resolves the caller's staging session from the sid cookie.
func (h *CartHandler) session(c *fiber.Ctx) (*staging.Session, error) {
	return h.Sessions.Get(c.Cookies("sid"))
}

// Start opens a staging session: snapshot the catalog, hand back the menu
// with live availability. An existing session for this sid is discarded.
func (h *CartHandler) Start(c *fiber.Ctx) error {
	sid := ensureSID(c)
	products, err := h.Products.ListAvailable()
	if err != nil {
		return fail(c, err)
	}
	sess := h.Sessions.Start(sid, products)
	applog.Info(c, "session.start", map[string]any{"sid": sid, "products": len(products)})
	return c.JSON(fiber.Map{"catalog": sess.Catalog()})
}

// Discard drops the session and its staged cart; durable state is untouched.
func (h *CartHandler) Discard(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	h.Sessions.Drop(sid)
	applog.Info(c, "session.discard", map[string]any{"sid": sid})
	return c.JSON(fiber.Map{"ok": true})
}

// Catalog returns the session's snapshot with availability net of the cart.
func (h *CartHandler) Catalog(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"catalog": sess.Catalog()})
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sess.Cart())
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return status(c, fiber.StatusBadRequest, "invalid_product_id")
	}
	qty, ok := validate.Qty(c.FormValue("qty"))
	if !ok {
		return status(c, fiber.StatusBadRequest, "invalid_quantity")
	}
	if err := sess.Add(productID, qty); err != nil {
		return fail(c, err)
	}
	return c.JSON(sess.Cart())
}

func (h *CartHandler) Modify(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	productID, ok := validate.ID(c.Params("productId"))
	if !ok {
		return status(c, fiber.StatusBadRequest, "invalid_product_id")
	}
	qty, ok := validate.Qty(c.FormValue("qty"))
	if !ok {
		return status(c, fiber.StatusBadRequest, "invalid_quantity")
	}
	if err := sess.Modify(productID, qty); err != nil {
		return fail(c, err)
	}
	return c.JSON(sess.Cart())
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	productID, ok := validate.ID(c.Params("productId"))
	if !ok {
		return status(c, fiber.StatusBadRequest, "invalid_product_id")
	}
	if err := sess.Remove(productID); err != nil {
		return fail(c, err)
	}
	return c.JSON(sess.Cart())
}
