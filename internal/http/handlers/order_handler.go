package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "tillpoint/internal/log"
	"tillpoint/internal/repos"
	"tillpoint/internal/services"
	"tillpoint/internal/staging"
	"tillpoint/internal/validate"
)

type OrderHandler struct {
	Sessions *staging.Registry
	Order    *services.OrderService
	Repo     *repos.OrderRepo
}

// Submit runs the submission transaction for the caller's session. Failures
// leave the cart intact, so the response invites a retry rather than a
// re-entry of the whole order.
func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c.Cookies("sid"))
	if err != nil {
		return fail(c, err)
	}

	orderID, err := h.Order.Submit(sess)
	if err != nil {
		applog.Error(c, "order.submit.fail", err, map[string]any{"sid": sess.ID})
		return fail(c, err)
	}

	applog.Audit(c, "order.submit", map[string]any{"order_id": orderID})
	report, err := h.Repo.Get(orderID)
	if err != nil {
		// The order is durable even if the read-back failed.
		return c.JSON(fiber.Map{"orderId": orderID})
	}
	return c.JSON(report)
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	orderID, ok := validate.ID(c.Params("id"))
	if !ok {
		return status(c, fiber.StatusBadRequest, "invalid_order_id")
	}
	report, err := h.Repo.Get(orderID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

// List renders the fulfillment report: pending orders by default,
// completed ones with ?completed=1.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	completed := c.Query("completed") == "1"
	reports, err := h.Repo.ListByCompleted(completed)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"orders": reports})
}

// Complete flips an order to completed (the fulfillment workflow).
func (h *OrderHandler) Complete(c *fiber.Ctx) error {
	orderID, ok := validate.ID(c.Params("id"))
	if !ok {
		return status(c, fiber.StatusBadRequest, "invalid_order_id")
	}
	if err := h.Repo.MarkCompleted(orderID); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "order.complete", map[string]any{"order_id": orderID})
	return c.JSON(fiber.Map{"ok": true})
}
