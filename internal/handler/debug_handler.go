package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Informaticspro/proyecto-factura/internal/storage"
)

// DebugHandler backs the database-inspection tooling. The wipe clears
// every data collection but leaves the license row alone.
type DebugHandler struct {
	store storage.Store
	log   *zap.Logger
}

func NewDebugHandler(store storage.Store, log *zap.Logger) *DebugHandler {
	return &DebugHandler{store: store, log: log}
}

func (h *DebugHandler) ClearDatabase(c *fiber.Ctx) error {
	if err := h.store.ClearAll(); err != nil {
		return fail(c, err)
	}
	h.log.Warn("database cleared via debug endpoint")
	return c.JSON(fiber.Map{"message": "Database cleared"})
}
