package service

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/storage"
	"github.com/Informaticspro/proyecto-factura/internal/storage/boltdb"
	"github.com/Informaticspro/proyecto-factura/internal/storage/sqlite"
)

// forEachBackend runs fn once per backend so every contract is proven
// on both the relational and the document store.
func forEachBackend(t *testing.T, fn func(t *testing.T, store storage.Store)) {
	t.Helper()

	t.Run("sqlite", func(t *testing.T) {
		log := zaptest.NewLogger(t)
		store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), log)
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
		fn(t, store)
	})

	t.Run("bolt", func(t *testing.T) {
		log := zaptest.NewLogger(t)
		store, err := boltdb.Open(filepath.Join(t.TempDir(), "test.bolt"), log)
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
		fn(t, store)
	})
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertDec compares decimals by value, not representation.
func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(dec(want)), "want %s, got %s", want, got)
}

func seedProduct(t *testing.T, store storage.Store, name, category, cost, price, stock string) uint {
	t.Helper()
	id, err := store.CreateProduct(&model.Product{
		Name:      name,
		Category:  category,
		CostPrice: dec(cost),
		SalePrice: dec(price),
		Unit:      model.UnitPiece,
		Stock:     dec(stock),
	})
	require.NoError(t, err)
	return id
}

func productStock(t *testing.T, store storage.Store, id uint) decimal.Decimal {
	t.Helper()
	p, err := store.GetProduct(id)
	require.NoError(t, err)
	return p.Stock
}
