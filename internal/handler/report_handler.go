package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Informaticspro/proyecto-factura/internal/service"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func (h *ReportHandler) GetDailyTotals(c *fiber.Ctx) error {
	totals, err := h.service.DailyTotals(c.QueryInt("days", 14))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(totals)
}

func (h *ReportHandler) GetMonthlyTotals(c *fiber.Ctx) error {
	totals, err := h.service.MonthlyTotals(c.QueryInt("year", 0))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(totals)
}

func (h *ReportHandler) GetLowStock(c *fiber.Ctx) error {
	products, err := h.service.LowStock()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(products)
}

func (h *ReportHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}

func (h *ReportHandler) GetFinance(c *fiber.Ctx) error {
	report, err := h.service.Finance()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

type rawQueryRequest struct {
	Query  string        `json:"query"`
	Params []interface{} `json:"params"`
}

// RunRawQuery is the reporting escape hatch; the caller never knows
// which backend answered.
func (h *ReportHandler) RunRawQuery(c *fiber.Ctx) error {
	var req rawQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing query"})
	}

	rows, err := h.service.RawQuery(req.Query, req.Params...)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}
