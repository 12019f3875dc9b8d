package sqlite

import (
	"gorm.io/gorm"

	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/storage"
)

// RecordMovement appends a ledger row and moves the product stock in
// the same transaction. Outbound entries use the same guarded decrement
// as sales: stock may never go negative.
func (s *Store) RecordMovement(m *model.Movement) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var res *gorm.DB
		switch m.Type {
		case model.MovementIn:
			res = tx.Model(&model.Product{}).
				Where("id = ?", m.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", m.Quantity))
		default:
			res = tx.Model(&model.Product{}).
				Where("id = ? AND stock >= ?", m.ProductID, m.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", m.Quantity))
		}
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.Product{}).Where("id = ?", m.ProductID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return storage.ErrNotFound
			}
			return &storage.InsufficientStockError{ProductID: m.ProductID}
		}

		return tx.Create(m).Error
	})
	return storage.AbortUnlessKnown("record movement", err)
}

func (s *Store) ListMovements(limit int) ([]storage.MovementEntry, error) {
	entries := []storage.MovementEntry{}
	err := s.db.Raw(`
		SELECT m.id, m.product_id, p.name AS product_name,
			m.type, m.quantity, m.date, m.reason
		FROM movements m
		JOIN products p ON p.id = m.product_id
		ORDER BY m.id DESC
		LIMIT ?`, limit).Scan(&entries).Error
	return entries, err
}
