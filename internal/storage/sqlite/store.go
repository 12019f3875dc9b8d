// Package sqlite implements the storage contract on an embedded
// relational database. It is the backend used when the application runs
// packaged on a device with a local filesystem.
package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/storage"
)

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

var _ storage.Store = (*Store)(nil)

// Open connects to the database file, creating it if missing, and
// ensures the schema. Foreign keys are enforced at the connection
// level; the line-item FK is what turns a conflicting product delete
// into a constraint error.
func Open(path string, log *zap.Logger) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// Single writer: every transaction scope serializes through one
	// connection, matching the single-process execution model.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	s := &Store{db: db, log: log}
	if err := s.EnsureSchema(); err != nil {
		return nil, err
	}

	log.Info("sqlite backend ready", zap.String("path", path))
	return s, nil
}

// EnsureSchema migrates additively, in foreign-key dependency order.
func (s *Store) EnsureSchema() error {
	return s.db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Sale{},
		&model.SaleLineItem{},
		&model.Movement{},
		&model.License{},
	)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) CreateProduct(p *model.Product) (uint, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if name := strings.TrimSpace(p.Category); name != "" {
			if err := upsertCategory(tx, name); err != nil {
				return err
			}
		}
		return tx.Create(p).Error
	})
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (s *Store) GetProduct(id uint) (*model.Product, error) {
	var p model.Product
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

func (s *Store) ListProducts(filter storage.ProductFilter) ([]model.Product, error) {
	products := []model.Product{}
	q := s.db.Order("id ASC")
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	err := q.Find(&products).Error
	return products, err
}

func (s *Store) UpdateProduct(id uint, patch model.ProductPatch) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return mapNotFound(err)
		}

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

		return tx.Save(&existing).Error
	})
}

func (s *Store) DeleteProduct(id uint) error {
	res := s.db.Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		// The RESTRICT constraint on sale_line_items is the enforcement
		// mechanism here; movements cascade away with the product.
		if strings.Contains(res.Error.Error(), "FOREIGN KEY constraint") {
			return &storage.ReferentialConflictError{ProductID: id}
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) ListCategories() ([]model.Category, error) {
	categories := []model.Category{}
	err := s.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (s *Store) UpsertCategory(name string) error {
	return upsertCategory(s.db, name)
}

// upsertCategory is idempotent: inserting an existing name is a no-op,
// never a duplicate and never an error.
func upsertCategory(tx *gorm.DB, name string) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&model.Category{Name: name}).Error
}

func (s *Store) LowStockProducts(threshold decimal.Decimal) ([]model.Product, error) {
	products := []model.Product{}
	err := s.db.Where("stock <= ?", threshold).Order("stock ASC").Find(&products).Error
	return products, err
}

func (s *Store) GetLicense() (*model.License, error) {
	var lic model.License
	if err := s.db.First(&lic, "id = ?", model.LicenseRowID).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &lic, nil
}

func (s *Store) SaveLicense(l *model.License) error {
	l.ID = model.LicenseRowID
	return s.db.Save(l).Error
}

func (s *Store) RawQuery(query string, args ...interface{}) ([]map[string]interface{}, error) {
	rows := []map[string]interface{}{}
	err := s.db.Raw(query, args...).Scan(&rows).Error
	return rows, err
}

// ClearAll is the debug wipe: every data table emptied in dependency
// order, license kept.
func (s *Store) ClearAll() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"movements", "sale_line_items", "sales", "products", "categories"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}
	return err
}
