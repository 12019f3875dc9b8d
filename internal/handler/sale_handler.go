package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/service"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

type recordSaleRequest struct {
	Items []model.SaleItemInput `json:"items"`
	Date  *time.Time            `json:"date"`
}

func (h *SaleHandler) RecordSale(c *fiber.Ctx) error {
	var req recordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	date := time.Time{}
	if req.Date != nil {
		date = *req.Date
	}

	id, err := h.service.RecordSale(req.Items, date)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"sale_id": id})
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	summaries, err := h.service.ListSummaries(c.QueryInt("limit", 25))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summaries)
}

func (h *SaleHandler) GetSaleItems(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	items, err := h.service.GetLineItems(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}
