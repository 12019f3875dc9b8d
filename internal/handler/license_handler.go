package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Informaticspro/proyecto-factura/internal/service"
)

type LicenseHandler struct {
	service service.LicenseService
}

func NewLicenseHandler(s service.LicenseService) *LicenseHandler {
	return &LicenseHandler{service: s}
}

func (h *LicenseHandler) Activate(c *fiber.Ctx) error {
	var body struct {
		Key string `json:"key"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	lic, err := h.service.Activate(body.Key)
	if errors.Is(err, service.ErrInvalidLicenseKey) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lic)
}

func (h *LicenseHandler) GetStatus(c *fiber.Ctx) error {
	status, err := h.service.Status()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(status)
}
