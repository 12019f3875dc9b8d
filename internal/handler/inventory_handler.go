package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/service"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

type recordMovementRequest struct {
	ProductID uint            `json:"product_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason"`
}

func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var req recordMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	err := h.service.RecordMovement(req.ProductID, model.MovementType(req.Type), req.Quantity, req.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Movement recorded"})
}

func (h *InventoryHandler) GetMovements(c *fiber.Ctx) error {
	movements, err := h.service.ListMovements(c.QueryInt("limit", 50))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(movements)
}
