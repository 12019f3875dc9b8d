package boltdb

import (
	"time"

	"github.com/shopspring/decimal"
	bolt "go.etcd.io/bbolt"

	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/storage"
)

func (s *Store) SalesBetween(from, to time.Time) ([]storage.SaleTotal, error) {
	totals := []storage.SaleTotal{}
	err := s.db.View(func(tx *bolt.Tx) error {
		sales := tx.Bucket(bucketSales)
		low := dateIndexKey(from, 0)
		high := dateIndexKey(to, 0)

		c := tx.Bucket(idxSaleDate).Cursor()
		for k, v := c.Seek(low); k != nil && string(k) < string(high); k, v = c.Next() {
			var sale model.Sale
			if err := decode(sales.Get(v), &sale); err != nil {
				return err
			}
			totals = append(totals, storage.SaleTotal{Date: sale.Date, Total: sale.Total})
		}
		return nil
	})
	return totals, err
}

func (s *Store) Stats(lowStockThreshold decimal.Decimal) (*storage.Stats, error) {
	stats := &storage.Stats{InventoryValue: decimal.Zero}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketProducts).ForEach(func(_, v []byte) error {
			var p model.Product
			if err := decode(v, &p); err != nil {
				return err
			}
			stats.TotalProducts++
			if p.Stock.LessThanOrEqual(lowStockThreshold) {
				stats.LowStockCount++
			}
			stats.InventoryValue = stats.InventoryValue.Add(p.Stock.Mul(p.CostPrice))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) FinanceSummary() (*storage.FinanceSummary, error) {
	summary := &storage.FinanceSummary{Income: decimal.Zero, Cost: decimal.Zero}
	err := s.db.View(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketSales).ForEach(func(_, v []byte) error {
			var sale model.Sale
			if err := decode(v, &sale); err != nil {
				return err
			}
			summary.Income = summary.Income.Add(sale.Total)
			summary.SaleCount++
			return nil
		}); err != nil {
			return err
		}

		// Cost of goods sold at the product's current cost price; a
		// product with line items cannot have been deleted.
		return tx.Bucket(bucketSaleItems).ForEach(func(_, v []byte) error {
			var item model.SaleLineItem
			if err := decode(v, &item); err != nil {
				return err
			}
			var product model.Product
			if err := getProduct(tx, item.ProductID, &product); err != nil {
				return err
			}
			summary.Cost = summary.Cost.Add(item.Quantity.Mul(product.CostPrice))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
