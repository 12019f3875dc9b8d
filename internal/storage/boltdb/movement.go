package boltdb

import (
	bolt "go.etcd.io/bbolt"

	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/storage"
)

// RecordMovement appends a ledger row and moves the product stock
// inside one write transaction. The outbound guard is re-checked right
// before the product write, same contract as the sale engine.
func (s *Store) RecordMovement(m *model.Movement) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		var product model.Product
		if err := getProduct(tx, m.ProductID, &product); err != nil {
			return err
		}

		if m.Type == model.MovementIn {
			product.Stock = product.Stock.Add(m.Quantity)
		} else {
			if product.Stock.LessThan(m.Quantity) {
				return &storage.InsufficientStockError{ProductID: m.ProductID}
			}
			product.Stock = product.Stock.Sub(m.Quantity)
		}
		if err := putProduct(tx, &product); err != nil {
			return err
		}

		return putMovement(tx, m)
	})
	return storage.AbortUnlessKnown("record movement", err)
}

func putMovement(tx *bolt.Tx, m *model.Movement) error {
	movements := tx.Bucket(bucketMovements)
	seq, err := movements.NextSequence()
	if err != nil {
		return err
	}
	m.ID = uint(seq)
	if err := movements.Put(itob(seq), encode(m)); err != nil {
		return err
	}
	return tx.Bucket(idxMovementProduct).Put(refKey(uint64(m.ProductID), seq), itob(seq))
}

func (s *Store) ListMovements(limit int) ([]storage.MovementEntry, error) {
	entries := []storage.MovementEntry{}
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketMovements).Cursor()
		for k, v := c.Last(); k != nil && len(entries) < limit; k, v = c.Prev() {
			var m model.Movement
			if err := decode(v, &m); err != nil {
				return err
			}
			var product model.Product
			if err := getProduct(tx, m.ProductID, &product); err != nil {
				return err
			}
			entries = append(entries, storage.MovementEntry{
				ID:          m.ID,
				ProductID:   m.ProductID,
				ProductName: product.Name,
				Type:        string(m.Type),
				Quantity:    m.Quantity,
				Date:        m.Date,
				Reason:      m.Reason,
			})
		}
		return nil
	})
	return entries, err
}
