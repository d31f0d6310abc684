package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "tillpoint/internal/log"
	"tillpoint/internal/repos"
	"tillpoint/internal/services"
	"tillpoint/internal/staging"
)

// fail maps core errors onto HTTP responses. Ledger errors are recoverable:
// the cart is exactly as it was, so the operator can correct and retry.
func fail(c *fiber.Ctx, err error) error {
	var insufficient *staging.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     "insufficient_stock",
			"productId": insufficient.ProductID,
			"available": insufficient.Available,
		})
	}
	var race *services.StockRaceError
	if errors.As(err, &race) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     "stock_race",
			"productId": race.ProductID,
		})
	}

	switch {
	case errors.Is(err, staging.ErrSessionNotFound):
		return status(c, fiber.StatusNotFound, "session_not_found")
	case errors.Is(err, staging.ErrUnknownProduct):
		return status(c, fiber.StatusNotFound, "unknown_product")
	case errors.Is(err, staging.ErrNotFound):
		return status(c, fiber.StatusNotFound, "not_in_cart")
	case errors.Is(err, staging.ErrInvalidQuantity):
		return status(c, fiber.StatusBadRequest, "invalid_quantity")
	case errors.Is(err, staging.ErrEmptyCart):
		return status(c, fiber.StatusBadRequest, "empty_cart")
	case errors.Is(err, staging.ErrSubmitting):
		return status(c, fiber.StatusConflict, "submission_pending")
	case errors.Is(err, services.ErrNameTaken):
		return status(c, fiber.StatusConflict, "name_taken")
	case errors.Is(err, services.ErrEmptyName),
		errors.Is(err, services.ErrNegativePrice),
		errors.Is(err, services.ErrNegativeStock):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repos.ErrProductNotFound):
		return status(c, fiber.StatusNotFound, "product_not_found")
	case errors.Is(err, repos.ErrOrderNotFound):
		return status(c, fiber.StatusNotFound, "order_not_found")
	}

	applog.Error(c, "server.error", err, nil)
	return status(c, fiber.StatusInternalServerError, "internal_error")
}

func status(c *fiber.Ctx, code int, kind string) error {
	return c.Status(code).JSON(fiber.Map{"error": kind})
}
