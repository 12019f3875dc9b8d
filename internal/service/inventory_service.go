package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Informaticspro/proyecto-factura/internal/metrics"
	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/storage"
	"github.com/Informaticspro/proyecto-factura/internal/ws"
	"github.com/Informaticspro/proyecto-factura/pkg/validator"
)

type InventoryService interface {
	// RecordMovement appends a ledger entry and adjusts the product
	// stock atomically. Outbound entries are rejected rather than ever
	// letting stock go negative.
	RecordMovement(productID uint, typ model.MovementType, quantity decimal.Decimal, reason string) error
	ListMovements(limit int) ([]storage.MovementEntry, error)
}

type inventoryService struct {
	store storage.Store
	hub   *ws.Hub
	log   *zap.Logger
}

func NewInventoryService(store storage.Store, hub *ws.Hub, log *zap.Logger) InventoryService {
	return &inventoryService{store: store, hub: hub, log: log}
}

func (s *inventoryService) RecordMovement(productID uint, typ model.MovementType, quantity decimal.Decimal, reason string) error {
	m := &model.Movement{
		ProductID: productID,
		Type:      typ,
		Quantity:  quantity,
		Date:      time.Now(),
		Reason:    strings.TrimSpace(reason),
	}
	if m.Reason == "" {
		m.Reason = model.DefaultMovementReason
	}
	if errs := validator.ValidateStruct(m); len(errs) > 0 {
		return validationError(errs[0])
	}

	if err := s.store.RecordMovement(m); err != nil {
		s.log.Warn("movement rejected",
			zap.Uint("product_id", productID),
			zap.String("type", string(typ)),
			zap.Error(err))
		return err
	}

	metrics.MovementsRecorded.WithLabelValues(string(typ)).Inc()
	s.log.Info("movement recorded",
		zap.Uint("movement_id", m.ID),
		zap.Uint("product_id", productID),
		zap.String("type", string(typ)),
		zap.String("quantity", quantity.String()))
	if s.hub != nil {
		s.hub.Publish(ws.Event{
			Type:   "stock_update",
			Action: "movement_recorded",
			Payload: map[string]interface{}{
				"movement_id": m.ID,
				"product_id":  productID,
				"type":        typ,
				"quantity":    quantity,
			},
		})
	}
	return nil
}

func (s *inventoryService) ListMovements(limit int) ([]storage.MovementEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.store.ListMovements(limit)
}
