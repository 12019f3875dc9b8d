package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/storage"
)

func TestCreateProductAndAutoCategory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewProductService(store, nil, zaptest.NewLogger(t))

		id, err := svc.CreateProduct(&model.Product{
			Name:      "Coffee",
			Category:  "Beverages",
			CostPrice: dec("1.20"),
			SalePrice: dec("2.00"),
			Unit:      model.UnitPiece,
			Stock:     dec("10"),
		})
		require.NoError(t, err)
		require.NotZero(t, id)

		got, err := svc.GetProduct(id)
		require.NoError(t, err)
		assert.Equal(t, "Coffee", got.Name)
		assert.Equal(t, "Beverages", got.Category)
		assertDec(t, "10", got.Stock)
		assert.False(t, got.CreatedAt.IsZero())

		// The category rolodex picks up names as products arrive.
		cats, err := svc.ListCategories()
		require.NoError(t, err)
		require.Len(t, cats, 1)
		assert.Equal(t, "Beverages", cats[0].Name)
	})
}

func TestCreateProductValidation(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewProductService(store, nil, zaptest.NewLogger(t))

		_, err := svc.CreateProduct(&model.Product{
			Name:      "Broken",
			CostPrice: dec("-1"),
			SalePrice: dec("2.00"),
			Unit:      model.UnitPiece,
		})
		var verr *storage.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "gte", verr.Tag)

		_, err = svc.CreateProduct(&model.Product{
			Name:      "Bad unit",
			CostPrice: dec("1"),
			SalePrice: dec("2"),
			Unit:      "gallon",
		})
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "oneof", verr.Tag)
	})
}

func TestListProductsStableOrderAndFilter(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewProductService(store, nil, zaptest.NewLogger(t))
		seedProduct(t, store, "Zeta", "Pantry", "1", "2", "1")
		seedProduct(t, store, "Alpha", "Beverages", "1", "2", "1")
		seedProduct(t, store, "Mid", "Pantry", "1", "2", "1")

		all, err := svc.ListProducts("")
		require.NoError(t, err)
		require.Len(t, all, 3)
		// Insertion order, not name order.
		assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, []string{all[0].Name, all[1].Name, all[2].Name})

		pantry, err := svc.ListProducts("Pantry")
		require.NoError(t, err)
		require.Len(t, pantry, 2)
		assert.Equal(t, "Zeta", pantry[0].Name)
		assert.Equal(t, "Mid", pantry[1].Name)
	})
}

func TestUpdateProductPartial(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewProductService(store, nil, zaptest.NewLogger(t))
		id := seedProduct(t, store, "Juice", "Beverages", "0.80", "1.50", "6")

		newPrice := dec("1.75")
		err := svc.UpdateProduct(id, model.ProductPatch{SalePrice: &newPrice})
		require.NoError(t, err)

		got, err := svc.GetProduct(id)
		require.NoError(t, err)
		assert.Equal(t, "Juice", got.Name)
		assertDec(t, "1.75", got.SalePrice)
		assertDec(t, "0.80", got.CostPrice)
		assertDec(t, "6", got.Stock)
	})
}

func TestUpdateProductEmptyPatchIsNoOp(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewProductService(store, nil, zaptest.NewLogger(t))

		// No fields set: nothing to do, not even an existence check.
		err := svc.UpdateProduct(9999, model.ProductPatch{})
		assert.NoError(t, err)
	})
}

func TestUpdateProductNotFound(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewProductService(store, nil, zaptest.NewLogger(t))

		name := "Ghost"
		err := svc.UpdateProduct(9999, model.ProductPatch{Name: &name})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestUpdateProductMovesCategoryFilter(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewProductService(store, nil, zaptest.NewLogger(t))
		id := seedProduct(t, store, "Soap", "Pantry", "0.50", "1.00", "4")

		cat := "Cleaning"
		require.NoError(t, svc.UpdateProduct(id, model.ProductPatch{Category: &cat}))

		old, err := svc.ListProducts("Pantry")
		require.NoError(t, err)
		assert.Empty(t, old)

		moved, err := svc.ListProducts("Cleaning")
		require.NoError(t, err)
		require.Len(t, moved, 1)
		assert.Equal(t, "Soap", moved[0].Name)
	})
}

func TestDeleteProduct(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewProductService(store, nil, zaptest.NewLogger(t))
		id := seedProduct(t, store, "Old stock", "Pantry", "1", "2", "3")

		require.NoError(t, svc.DeleteProduct(id))

		_, err := svc.GetProduct(id)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		err = svc.DeleteProduct(id)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestDeleteProductBlockedBySaleHistory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		log := zaptest.NewLogger(t)
		products := NewProductService(store, nil, log)
		sales := NewSaleService(store, nil, log)
		id := seedProduct(t, store, "Sold once", "Pantry", "1.00", "2.00", "10")

		_, err := sales.RecordSale([]model.SaleItemInput{
			{ProductID: id, Quantity: dec("1"), UnitPrice: dec("2.00")},
		}, time.Time{})
		require.NoError(t, err)

		err = products.DeleteProduct(id)
		var conflict *storage.ReferentialConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, id, conflict.ProductID)

		// The refusal leaves the product untouched.
		got, err := products.GetProduct(id)
		require.NoError(t, err)
		assertDec(t, "9", got.Stock)
	})
}

func TestDeleteProductCascadesMovements(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		log := zaptest.NewLogger(t)
		products := NewProductService(store, nil, log)
		inventory := NewInventoryService(store, nil, log)
		id := seedProduct(t, store, "Restocked", "Pantry", "1", "2", "0")

		require.NoError(t, inventory.RecordMovement(id, model.MovementIn, dec("20"), "restock"))
		require.NoError(t, products.DeleteProduct(id))

		movements, err := inventory.ListMovements(0)
		require.NoError(t, err)
		assert.Empty(t, movements)
	})
}

func TestUpsertCategoryIdempotent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewProductService(store, nil, zaptest.NewLogger(t))

		require.NoError(t, svc.UpsertCategory("Dairy"))
		require.NoError(t, svc.UpsertCategory("Dairy"))
		require.NoError(t, svc.UpsertCategory("  Dairy  "))
		require.NoError(t, svc.UpsertCategory(""))

		cats, err := svc.ListCategories()
		require.NoError(t, err)
		require.Len(t, cats, 1)
		assert.Equal(t, "Dairy", cats[0].Name)
	})
}
