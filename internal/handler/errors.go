package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Informaticspro/proyecto-factura/internal/storage"
)

// fail maps core errors to HTTP statuses. The core never formats for
// users; the message is the error text verbatim.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

func statusFor(err error) int {
	var insufficient *storage.InsufficientStockError
	var conflict *storage.ReferentialConflictError
	var invalid *storage.ValidationError

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, storage.ErrEmptyCart), errors.As(err, &invalid):
		return fiber.StatusBadRequest
	case errors.As(err, &insufficient), errors.As(err, &conflict):
		return fiber.StatusConflict
	case errors.Is(err, storage.ErrBackendUnavailable):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id parameter")
	}
	return uint(id), nil
}
