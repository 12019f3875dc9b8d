// Package boltdb implements the storage contract on a local key/value
// document store. Schema is declarative: one bucket per collection plus
// secondary-index buckets mirroring the relational backend's indexed
// columns (category, sale reference, product reference, date). It is
// the backend used where no embedded SQL engine is available.
package boltdb

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/Informaticspro/proyecto-factura/internal/storage"
)

var (
	bucketProducts      = []byte("products")
	bucketCategories    = []byte("categories")
	bucketCategoryNames = []byte("category_names") // name -> category id
	bucketSales         = []byte("sales")
	bucketSaleItems     = []byte("sale_items")
	bucketMovements     = []byte("movements")
	bucketLicense       = []byte("license")

	idxProductCategory = []byte("idx_product_category") // category\x00 + product id
	idxItemSale        = []byte("idx_item_sale")        // sale id + item id
	idxItemProduct     = []byte("idx_item_product")     // product id + item id
	idxMovementProduct = []byte("idx_movement_product") // product id + movement id
	idxSaleDate        = []byte("idx_sale_date")        // fixed-width UTC date + sale id
)

// dataBuckets are wiped by ClearAll; the license bucket survives.
var dataBuckets = [][]byte{
	bucketProducts, bucketCategories, bucketCategoryNames,
	bucketSales, bucketSaleItems, bucketMovements,
	idxProductCategory, idxItemSale, idxItemProduct,
	idxMovementProduct, idxSaleDate,
}

type Store struct {
	db  *bolt.DB
	log *zap.Logger
}

var _ storage.Store = (*Store)(nil)

func Open(path string, log *zap.Logger) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.EnsureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	log.Info("bolt backend ready", zap.String("path", path))
	return s, nil
}

// EnsureSchema creates every missing collection and index bucket.
func (s *Store) EnsureSchema() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range dataBuckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucketIfNotExists(bucketLicense)
		return err
	})
}

func (s *Store) Close() error { return s.db.Close() }

// ClearAll drops and recreates the data buckets; license is kept.
func (s *Store) ClearAll() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range dataBuckets {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
}

// RawQuery has no dialect to run against here; reporting callers
// degrade to empty result sets.
func (s *Store) RawQuery(string, ...interface{}) ([]map[string]interface{}, error) {
	return nil, storage.ErrRawQueryUnsupported
}

// itob renders ids as 8-byte big-endian keys so cursor order is id order.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func btoi(b []byte) uint64 { return binary.BigEndian.Uint64(b) }

// refKey composes an index key of owner id + owned id.
func refKey(owner, owned uint64) []byte {
	return append(itob(owner), itob(owned)...)
}

// catKey composes the category index key; the NUL keeps category names
// from prefix-colliding.
func catKey(category string, id uint64) []byte {
	k := append([]byte(category), 0)
	return append(k, itob(id)...)
}

// dateIndexKey is fixed width so lexicographic order is time order.
func dateIndexKey(t time.Time, id uint64) []byte {
	k := []byte(t.UTC().Format("2006-01-02T15:04:05.000000000Z"))
	return append(k, itob(id)...)
}

func encode(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("boltdb encode: %v", err))
	}
	return b
}

func decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
