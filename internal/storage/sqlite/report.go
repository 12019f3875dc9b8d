package sqlite

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/storage"
)

func (s *Store) SalesBetween(from, to time.Time) ([]storage.SaleTotal, error) {
	totals := []storage.SaleTotal{}
	err := s.db.Model(&model.Sale{}).
		Select("date", "total").
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC").
		Scan(&totals).Error
	return totals, err
}

func (s *Store) Stats(lowStockThreshold decimal.Decimal) (*storage.Stats, error) {
	var stats storage.Stats

	if err := s.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Product{}).
		Where("stock <= ?", lowStockThreshold).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	// Valuation at cost.
	if err := s.db.Model(&model.Product{}).
		Select("COALESCE(SUM(stock * cost_price), 0)").
		Scan(&stats.InventoryValue).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (s *Store) FinanceSummary() (*storage.FinanceSummary, error) {
	var summary storage.FinanceSummary
	err := s.db.Raw(`
		SELECT
			(SELECT COALESCE(SUM(total), 0) FROM sales) AS income,
			(SELECT COALESCE(SUM(i.quantity * p.cost_price), 0)
				FROM sale_line_items i
				JOIN products p ON p.id = i.product_id) AS cost,
			(SELECT COUNT(*) FROM sales) AS sale_count`).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
