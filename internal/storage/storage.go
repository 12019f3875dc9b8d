// Package storage defines the backend-neutral persistence contract.
// Two implementations exist: an embedded relational store (sqlite) used
// on-device and a document store (boltdb) used where no SQL engine is
// available. Services depend only on this interface and never branch on
// the backend in business logic.
package storage

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Informaticspro/proyecto-factura/internal/model"
)

// ProductFilter narrows ListProducts. The zero value means no filter.
type ProductFilter struct {
	Category string
}

// Store is the full command/query surface of the persistence core.
//
// Mutations that touch stock (RecordSale, RecordMovement) are atomic:
// either every row lands and every stock field moves, or nothing does.
// The stock-sufficiency guard is part of the same atomic step as the
// decrement, so concurrent callers can never drive stock negative.
type Store interface {
	// EnsureSchema creates missing tables/collections and indexes.
	// Safe to call on every cold start.
	EnsureSchema() error

	CreateProduct(p *model.Product) (uint, error)
	GetProduct(id uint) (*model.Product, error)
	ListProducts(filter ProductFilter) ([]model.Product, error)
	UpdateProduct(id uint, patch model.ProductPatch) error
	DeleteProduct(id uint) error

	ListCategories() ([]model.Category, error)
	UpsertCategory(name string) error

	// RecordSale persists the prepared sale header and its line items,
	// decrements stock per item under the sufficiency guard, and writes
	// one outbound ledger entry per item, all in one transaction scope.
	RecordSale(sale *model.Sale) (uint, error)
	ListSalesSummary(limit int) ([]SaleSummary, error)
	GetSaleLineItems(saleID uint) ([]LineItemEntry, error)

	RecordMovement(m *model.Movement) error
	ListMovements(limit int) ([]MovementEntry, error)

	SalesBetween(from, to time.Time) ([]SaleTotal, error)
	LowStockProducts(threshold decimal.Decimal) ([]model.Product, error)
	Stats(lowStockThreshold decimal.Decimal) (*Stats, error)
	FinanceSummary() (*FinanceSummary, error)

	GetLicense() (*model.License, error)
	SaveLicense(l *model.License) error

	// RawQuery is the reporting escape hatch. Backends without a query
	// dialect return ErrRawQueryUnsupported and callers degrade to
	// empty result sets.
	RawQuery(query string, args ...interface{}) ([]map[string]interface{}, error)

	// ClearAll wipes every data collection but keeps the license row.
	ClearAll() error

	Close() error
}
