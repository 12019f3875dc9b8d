package sqlite

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/storage"
)

// RecordSale runs the sale engine inside one native transaction:
// header, then per line item in caller order: the item row, the guarded
// stock decrement, and the paired outbound ledger entry. The decrement
// and its sufficiency check are a single conditional UPDATE, so two
// concurrent sales can never both pass the guard for more stock than
// exists. Any failure rolls the whole scope back.
func (s *Store) RecordSale(sale *model.Sale) (uint, error) {
	items := sale.Items
	sale.Items = nil

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		for i := range items {
			item := &items[i]
			item.SaleID = sale.ID
			if err := tx.Create(item).Error; err != nil {
				return err
			}

			res := tx.Model(&model.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &storage.InsufficientStockError{ProductID: item.ProductID}
			}

			movement := &model.Movement{
				ProductID: item.ProductID,
				Type:      model.MovementOut,
				Quantity:  item.Quantity,
				Date:      sale.Date,
				Reason:    fmt.Sprintf("sale #%d", sale.ID),
			}
			if err := tx.Create(movement).Error; err != nil {
				return err
			}
		}
		return nil
	})

	sale.Items = items
	if err != nil {
		return 0, storage.AbortUnlessKnown("record sale", err)
	}
	return sale.ID, nil
}

func (s *Store) ListSalesSummary(limit int) ([]storage.SaleSummary, error) {
	summaries := []storage.SaleSummary{}
	err := s.db.Raw(`
		SELECT s.id, s.date, s.total,
			(SELECT COUNT(*) FROM sale_line_items i WHERE i.sale_id = s.id) AS item_count
		FROM sales s
		ORDER BY s.id DESC
		LIMIT ?`, limit).Scan(&summaries).Error
	return summaries, err
}

func (s *Store) GetSaleLineItems(saleID uint) ([]storage.LineItemEntry, error) {
	entries := []storage.LineItemEntry{}
	err := s.db.Raw(`
		SELECT i.id, i.sale_id, i.product_id, p.name AS product_name,
			i.quantity, i.unit_price, i.subtotal
		FROM sale_line_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.sale_id = ?
		ORDER BY i.id ASC`, saleID).Scan(&entries).Error
	return entries, err
}
