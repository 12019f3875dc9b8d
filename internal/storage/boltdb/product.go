package boltdb

import (
	"bytes"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	bolt "go.etcd.io/bbolt"

	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/storage"
)

func (s *Store) CreateProduct(p *model.Product) (uint, error) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if name := strings.TrimSpace(p.Category); name != "" {
			if err := upsertCategory(tx, name); err != nil {
				return err
			}
		}

		products := tx.Bucket(bucketProducts)
		seq, err := products.NextSequence()
		if err != nil {
			return err
		}
		p.ID = uint(seq)
		now := time.Now()
		p.CreatedAt = now
		p.UpdatedAt = now

		if err := products.Put(itob(seq), encode(p)); err != nil {
			return err
		}
		if p.Category != "" {
			return tx.Bucket(idxProductCategory).Put(catKey(p.Category, seq), itob(seq))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (s *Store) GetProduct(id uint) (*model.Product, error) {
	var p model.Product
	err := s.db.View(func(tx *bolt.Tx) error {
		return getProduct(tx, id, &p)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func getProduct(tx *bolt.Tx, id uint, p *model.Product) error {
	data := tx.Bucket(bucketProducts).Get(itob(uint64(id)))
	if data == nil {
		return storage.ErrNotFound
	}
	return decode(data, p)
}

func putProduct(tx *bolt.Tx, p *model.Product) error {
	p.UpdatedAt = time.Now()
	return tx.Bucket(bucketProducts).Put(itob(uint64(p.ID)), encode(p))
}

func (s *Store) ListProducts(filter storage.ProductFilter) ([]model.Product, error) {
	products := []model.Product{}
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketProducts)

		if filter.Category != "" {
			// Prefix scan over the category index keeps id order.
			prefix := append([]byte(filter.Category), 0)
			c := tx.Bucket(idxProductCategory).Cursor()
			for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
				var p model.Product
				if err := decode(bucket.Get(v), &p); err != nil {
					return err
				}
				products = append(products, p)
			}
			return nil
		}

		return bucket.ForEach(func(_, v []byte) error {
			var p model.Product
			if err := decode(v, &p); err != nil {
				return err
			}
			products = append(products, p)
			return nil
		})
	})
	return products, err
}

func (s *Store) UpdateProduct(id uint, patch model.ProductPatch) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		var existing model.Product
		// Update-by-key is silent here, so existence is checked first.
		if err := getProduct(tx, id, &existing); err != nil {
			return err
		}

		oldCategory := existing.Category

		if patch.Name != nil {
			existing.Name = *patch.Name
		}
		if patch.Category != nil {
			existing.Category = *patch.Category
			if name := strings.TrimSpace(*patch.Category); name != "" {
				if err := upsertCategory(tx, name); err != nil {
					return err
				}
			}
		}
		if patch.CostPrice != nil {
			existing.CostPrice = *patch.CostPrice
		}
		if patch.SalePrice != nil {
			existing.SalePrice = *patch.SalePrice
		}
		if patch.Unit != nil {
			existing.Unit = *patch.Unit
		}
		if patch.Stock != nil {
			existing.Stock = *patch.Stock
		}

		if existing.Category != oldCategory {
			idx := tx.Bucket(idxProductCategory)
			if oldCategory != "" {
				if err := idx.Delete(catKey(oldCategory, uint64(id))); err != nil {
					return err
				}
			}
			if existing.Category != "" {
				if err := idx.Put(catKey(existing.Category, uint64(id)), itob(uint64(id))); err != nil {
					return err
				}
			}
		}

		return putProduct(tx, &existing)
	})
}

func (s *Store) DeleteProduct(id uint) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		var existing model.Product
		if err := getProduct(tx, id, &existing); err != nil {
			return err
		}

		// No native FK enforcement: the line-item restriction is an
		// explicit index check inside the same write transaction.
		prefix := itob(uint64(id))
		c := tx.Bucket(idxItemProduct).Cursor()
		if k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix) {
			return &storage.ReferentialConflictError{ProductID: id}
		}

		// Ledger rows cascade with the product.
		movements := tx.Bucket(bucketMovements)
		movIdx := tx.Bucket(idxMovementProduct)
		mc := movIdx.Cursor()
		for k, v := mc.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = mc.Next() {
			if err := movements.Delete(v); err != nil {
				return err
			}
			if err := movIdx.Delete(k); err != nil {
				return err
			}
		}

		if existing.Category != "" {
			if err := tx.Bucket(idxProductCategory).Delete(catKey(existing.Category, uint64(id))); err != nil {
				return err
			}
		}
		return tx.Bucket(bucketProducts).Delete(itob(uint64(id)))
	})
}

func (s *Store) ListCategories() ([]model.Category, error) {
	categories := []model.Category{}
	err := s.db.View(func(tx *bolt.Tx) error {
		// The name index iterates in name order.
		return tx.Bucket(bucketCategoryNames).ForEach(func(k, v []byte) error {
			categories = append(categories, model.Category{ID: uint(btoi(v)), Name: string(k)})
			return nil
		})
	})
	return categories, err
}

func (s *Store) UpsertCategory(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return upsertCategory(tx, name)
	})
}

func upsertCategory(tx *bolt.Tx, name string) error {
	names := tx.Bucket(bucketCategoryNames)
	if names.Get([]byte(name)) != nil {
		return nil
	}
	categories := tx.Bucket(bucketCategories)
	seq, err := categories.NextSequence()
	if err != nil {
		return err
	}
	cat := model.Category{ID: uint(seq), Name: name}
	if err := categories.Put(itob(seq), encode(cat)); err != nil {
		return err
	}
	return names.Put([]byte(name), itob(seq))
}

func (s *Store) LowStockProducts(threshold decimal.Decimal) ([]model.Product, error) {
	all, err := s.ListProducts(storage.ProductFilter{})
	if err != nil {
		return nil, err
	}
	low := []model.Product{}
	for _, p := range all {
		if p.Stock.LessThanOrEqual(threshold) {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Stock.LessThan(low[j].Stock)
	})
	return low, nil
}

func (s *Store) GetLicense() (*model.License, error) {
	var lic model.License
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketLicense).Get(itob(model.LicenseRowID))
		if data == nil {
			return storage.ErrNotFound
		}
		return decode(data, &lic)
	})
	if err != nil {
		return nil, err
	}
	return &lic, nil
}

func (s *Store) SaveLicense(l *model.License) error {
	l.ID = model.LicenseRowID
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLicense).Put(itob(model.LicenseRowID), encode(l))
	})
}
