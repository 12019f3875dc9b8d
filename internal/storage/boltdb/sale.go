package boltdb

import (
	"bytes"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/storage"
)

// RecordSale runs the sale engine inside one bolt write transaction,
// which gives the multi-bucket writes all-or-nothing visibility. The
// store has no conditional-update primitive, so the stock guard is
// re-checked immediately before each product write inside the same
// transaction; the single-writer lock makes that equivalent to the
// relational backend's guarded UPDATE.
func (s *Store) RecordSale(sale *model.Sale) (uint, error) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		sales := tx.Bucket(bucketSales)
		seq, err := sales.NextSequence()
		if err != nil {
			return err
		}
		sale.ID = uint(seq)

		header := *sale
		header.Items = nil
		if err := sales.Put(itob(seq), encode(&header)); err != nil {
			return err
		}
		if err := tx.Bucket(idxSaleDate).Put(dateIndexKey(sale.Date, seq), itob(seq)); err != nil {
			return err
		}

		items := tx.Bucket(bucketSaleItems)
		for i := range sale.Items {
			item := &sale.Items[i]
			item.SaleID = sale.ID

			itemSeq, err := items.NextSequence()
			if err != nil {
				return err
			}
			item.ID = uint(itemSeq)
			if err := items.Put(itob(itemSeq), encode(item)); err != nil {
				return err
			}
			if err := tx.Bucket(idxItemSale).Put(refKey(seq, itemSeq), itob(itemSeq)); err != nil {
				return err
			}
			if err := tx.Bucket(idxItemProduct).Put(refKey(uint64(item.ProductID), itemSeq), itob(itemSeq)); err != nil {
				return err
			}

			var product model.Product
			if err := getProduct(tx, item.ProductID, &product); err != nil {
				return err
			}
			if product.Stock.LessThan(item.Quantity) {
				return &storage.InsufficientStockError{ProductID: item.ProductID}
			}
			product.Stock = product.Stock.Sub(item.Quantity)
			if err := putProduct(tx, &product); err != nil {
				return err
			}

			movement := &model.Movement{
				ProductID: item.ProductID,
				Type:      model.MovementOut,
				Quantity:  item.Quantity,
				Date:      sale.Date,
				Reason:    fmt.Sprintf("sale #%d", sale.ID),
			}
			if err := putMovement(tx, movement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, storage.AbortUnlessKnown("record sale", err)
	}
	return sale.ID, nil
}

func (s *Store) ListSalesSummary(limit int) ([]storage.SaleSummary, error) {
	summaries := []storage.SaleSummary{}
	err := s.db.View(func(tx *bolt.Tx) error {
		itemIdx := tx.Bucket(idxItemSale)
		c := tx.Bucket(bucketSales).Cursor()
		for k, v := c.Last(); k != nil && len(summaries) < limit; k, v = c.Prev() {
			var sale model.Sale
			if err := decode(v, &sale); err != nil {
				return err
			}
			summaries = append(summaries, storage.SaleSummary{
				ID:        sale.ID,
				Date:      sale.Date,
				Total:     sale.Total,
				ItemCount: countPrefix(itemIdx, k),
			})
		}
		return nil
	})
	return summaries, err
}

func (s *Store) GetSaleLineItems(saleID uint) ([]storage.LineItemEntry, error) {
	entries := []storage.LineItemEntry{}
	err := s.db.View(func(tx *bolt.Tx) error {
		items := tx.Bucket(bucketSaleItems)
		prefix := itob(uint64(saleID))
		c := tx.Bucket(idxItemSale).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var item model.SaleLineItem
			if err := decode(items.Get(v), &item); err != nil {
				return err
			}
			var product model.Product
			if err := getProduct(tx, item.ProductID, &product); err != nil {
				return err
			}
			entries = append(entries, storage.LineItemEntry{
				ID:          item.ID,
				SaleID:      item.SaleID,
				ProductID:   item.ProductID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Subtotal:    item.Subtotal,
			})
		}
		return nil
	})
	return entries, err
}

func countPrefix(b *bolt.Bucket, prefix []byte) int {
	n := 0
	c := b.Cursor()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		n++
	}
	return n
}
