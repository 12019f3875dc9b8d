package storage

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Informaticspro/proyecto-factura/internal/model"
)

// Unavailable stands in when no backend could be opened: display-only
// reads degrade to empty result sets so views keep rendering, while
// every mutation fails loudly with ErrBackendUnavailable.
type Unavailable struct{}

var _ Store = Unavailable{}

func NewUnavailable() Unavailable { return Unavailable{} }

func (Unavailable) EnsureSchema() error { return ErrBackendUnavailable }

func (Unavailable) CreateProduct(*model.Product) (uint, error) { return 0, ErrBackendUnavailable }
func (Unavailable) GetProduct(uint) (*model.Product, error)    { return nil, ErrNotFound }
func (Unavailable) ListProducts(ProductFilter) ([]model.Product, error) {
	return []model.Product{}, nil
}
func (Unavailable) UpdateProduct(uint, model.ProductPatch) error { return ErrBackendUnavailable }
func (Unavailable) DeleteProduct(uint) error                     { return ErrBackendUnavailable }

func (Unavailable) ListCategories() ([]model.Category, error) { return []model.Category{}, nil }
func (Unavailable) UpsertCategory(string) error               { return ErrBackendUnavailable }

func (Unavailable) RecordSale(*model.Sale) (uint, error) { return 0, ErrBackendUnavailable }
func (Unavailable) ListSalesSummary(int) ([]SaleSummary, error) {
	return []SaleSummary{}, nil
}
func (Unavailable) GetSaleLineItems(uint) ([]LineItemEntry, error) {
	return []LineItemEntry{}, nil
}

func (Unavailable) RecordMovement(*model.Movement) error { return ErrBackendUnavailable }
func (Unavailable) ListMovements(int) ([]MovementEntry, error) {
	return []MovementEntry{}, nil
}

func (Unavailable) SalesBetween(time.Time, time.Time) ([]SaleTotal, error) {
	return []SaleTotal{}, nil
}
func (Unavailable) LowStockProducts(decimal.Decimal) ([]model.Product, error) {
	return []model.Product{}, nil
}
func (Unavailable) Stats(decimal.Decimal) (*Stats, error) { return &Stats{}, nil }
func (Unavailable) FinanceSummary() (*FinanceSummary, error) {
	return &FinanceSummary{}, nil
}

func (Unavailable) GetLicense() (*model.License, error) { return nil, ErrNotFound }
func (Unavailable) SaveLicense(*model.License) error    { return ErrBackendUnavailable }

func (Unavailable) RawQuery(string, ...interface{}) ([]map[string]interface{}, error) {
	return []map[string]interface{}{}, nil
}

func (Unavailable) ClearAll() error { return ErrBackendUnavailable }
func (Unavailable) Close() error    { return nil }
