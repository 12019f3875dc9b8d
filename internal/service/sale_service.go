package service

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Informaticspro/proyecto-factura/internal/metrics"
	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/storage"
	"github.com/Informaticspro/proyecto-factura/internal/ws"
	"github.com/Informaticspro/proyecto-factura/pkg/validator"
)

type SaleService interface {
	// RecordSale validates the cart, fixes subtotals and the total, and
	// hands the prepared sale to the backend's atomic engine. A zero
	// date defaults to the transaction time.
	RecordSale(items []model.SaleItemInput, date time.Time) (uint, error)
	ListSummaries(limit int) ([]storage.SaleSummary, error)
	GetLineItems(saleID uint) ([]storage.LineItemEntry, error)
}

type saleService struct {
	store storage.Store
	hub   *ws.Hub
	log   *zap.Logger
}

func NewSaleService(store storage.Store, hub *ws.Hub, log *zap.Logger) SaleService {
	return &saleService{store: store, hub: hub, log: log}
}

func (s *saleService) RecordSale(items []model.SaleItemInput, date time.Time) (uint, error) {
	if len(items) == 0 {
		metrics.SalesRejected.WithLabelValues("empty_cart").Inc()
		return 0, storage.ErrEmptyCart
	}

	lineItems := make([]model.SaleLineItem, 0, len(items))
	total := decimal.Zero
	for i := range items {
		if errs := validator.ValidateStruct(&items[i]); len(errs) > 0 {
			metrics.SalesRejected.WithLabelValues("validation").Inc()
			return 0, validationError(errs[0])
		}
		subtotal := items[i].SubtotalValue()
		total = total.Add(subtotal)
		lineItems = append(lineItems, model.SaleLineItem{
			ProductID: items[i].ProductID,
			Quantity:  items[i].Quantity,
			UnitPrice: items[i].UnitPrice,
			Subtotal:  subtotal,
		})
	}

	if date.IsZero() {
		date = time.Now()
	}
	sale := &model.Sale{Date: date, Total: total, Items: lineItems}

	id, err := s.store.RecordSale(sale)
	if err != nil {
		var insufficient *storage.InsufficientStockError
		if errors.As(err, &insufficient) {
			metrics.SalesRejected.WithLabelValues("insufficient_stock").Inc()
			s.log.Warn("sale rejected",
				zap.Uint("product_id", insufficient.ProductID),
				zap.Error(err))
		} else {
			metrics.SalesRejected.WithLabelValues("aborted").Inc()
			s.log.Error("sale transaction failed", zap.Error(err))
		}
		return 0, err
	}

	metrics.SalesRecorded.Inc()
	s.log.Info("sale recorded",
		zap.Uint("sale_id", id),
		zap.String("total", total.StringFixed(2)),
		zap.Int("items", len(lineItems)))
	if s.hub != nil {
		s.hub.Publish(ws.Event{
			Type:   "stock_update",
			Action: "sale_recorded",
			Payload: map[string]interface{}{
				"sale_id": id,
				"total":   total,
				"items":   len(lineItems),
			},
		})
	}
	return id, nil
}

func (s *saleService) ListSummaries(limit int) ([]storage.SaleSummary, error) {
	if limit <= 0 {
		limit = 25
	}
	return s.store.ListSalesSummary(limit)
}

func (s *saleService) GetLineItems(saleID uint) ([]storage.LineItemEntry, error) {
	return s.store.GetSaleLineItems(saleID)
}
