package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/storage"
)

func TestRecordSaleDecrementsStockAndWritesLedger(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewSaleService(store, nil, zaptest.NewLogger(t))
		productID := seedProduct(t, store, "Coffee", "Beverages", "1.20", "2.00", "10")

		saleID, err := svc.RecordSale([]model.SaleItemInput{
			{ProductID: productID, Quantity: dec("3"), UnitPrice: dec("2.00")},
		}, time.Time{})
		require.NoError(t, err)
		require.NotZero(t, saleID)

		assertDec(t, "7", productStock(t, store, productID))

		summaries, err := svc.ListSummaries(0)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, saleID, summaries[0].ID)
		assert.Equal(t, 1, summaries[0].ItemCount)
		assertDec(t, "6.00", summaries[0].Total)

		items, err := svc.GetLineItems(saleID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Coffee", items[0].ProductName)
		assertDec(t, "6.00", items[0].Subtotal)

		movements, err := store.ListMovements(10)
		require.NoError(t, err)
		require.Len(t, movements, 1)
		assert.Equal(t, string(model.MovementOut), movements[0].Type)
		assert.Equal(t, fmt.Sprintf("sale #%d", saleID), movements[0].Reason)
		assertDec(t, "3", movements[0].Quantity)
	})
}

func TestRecordSaleTotalIsSumOfRoundedSubtotals(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewSaleService(store, nil, zaptest.NewLogger(t))
		rice := seedProduct(t, store, "Rice", "Grains", "0.50", "0.95", "100")
		beans := seedProduct(t, store, "Beans", "Grains", "0.80", "1.10", "100")

		saleID, err := svc.RecordSale([]model.SaleItemInput{
			{ProductID: rice, Quantity: dec("2.5"), UnitPrice: dec("0.95")},  // 2.375 -> 2.38
			{ProductID: beans, Quantity: dec("1.5"), UnitPrice: dec("1.10")}, // 1.65
		}, time.Time{})
		require.NoError(t, err)

		items, err := svc.GetLineItems(saleID)
		require.NoError(t, err)
		require.Len(t, items, 2)

		summaries, err := svc.ListSummaries(0)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assertDec(t, "4.03", summaries[0].Total)

		sum := items[0].Subtotal.Add(items[1].Subtotal)
		assert.True(t, summaries[0].Total.Equal(sum), "total must equal the sum of subtotals")

		assertDec(t, "97.5", productStock(t, store, rice))
		assertDec(t, "98.5", productStock(t, store, beans))
	})
}

func TestRecordSaleEmptyCart(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewSaleService(store, nil, zaptest.NewLogger(t))

		_, err := svc.RecordSale(nil, time.Time{})
		assert.ErrorIs(t, err, storage.ErrEmptyCart)
	})
}

func TestRecordSaleValidation(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewSaleService(store, nil, zaptest.NewLogger(t))
		productID := seedProduct(t, store, "Milk", "Dairy", "0.70", "1.00", "5")

		_, err := svc.RecordSale([]model.SaleItemInput{
			{ProductID: productID, Quantity: dec("0"), UnitPrice: dec("1.00")},
		}, time.Time{})

		var verr *storage.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "SaleItemInput.Quantity", verr.Field)
		assertDec(t, "5", productStock(t, store, productID))
	})
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewSaleService(store, nil, zaptest.NewLogger(t))
		productID := seedProduct(t, store, "Sugar", "Grains", "0.40", "0.80", "2")

		_, err := svc.RecordSale([]model.SaleItemInput{
			{ProductID: productID, Quantity: dec("5"), UnitPrice: dec("0.80")},
		}, time.Time{})

		var insufficient *storage.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, productID, insufficient.ProductID)

		// Rejected sales leave no trace anywhere.
		assertDec(t, "2", productStock(t, store, productID))
		summaries, err := svc.ListSummaries(0)
		require.NoError(t, err)
		assert.Empty(t, summaries)
		movements, err := store.ListMovements(10)
		require.NoError(t, err)
		assert.Empty(t, movements)
	})
}

func TestRecordSaleRollsBackAllItemsOnFailure(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewSaleService(store, nil, zaptest.NewLogger(t))
		plenty := seedProduct(t, store, "Water", "Beverages", "0.20", "0.50", "50")
		scarce := seedProduct(t, store, "Honey", "Pantry", "3.00", "5.00", "1")

		_, err := svc.RecordSale([]model.SaleItemInput{
			{ProductID: plenty, Quantity: dec("4"), UnitPrice: dec("0.50")},
			{ProductID: scarce, Quantity: dec("3"), UnitPrice: dec("5.00")},
		}, time.Time{})

		var insufficient *storage.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, scarce, insufficient.ProductID)

		// The first item already succeeded inside the transaction; the
		// abort must undo it too.
		assertDec(t, "50", productStock(t, store, plenty))
		assertDec(t, "1", productStock(t, store, scarce))

		summaries, err := svc.ListSummaries(0)
		require.NoError(t, err)
		assert.Empty(t, summaries)
		movements, err := store.ListMovements(10)
		require.NoError(t, err)
		assert.Empty(t, movements)
	})
}

func TestRecordSaleHonorsExplicitDate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewSaleService(store, nil, zaptest.NewLogger(t))
		productID := seedProduct(t, store, "Bread", "Bakery", "0.30", "0.60", "12")

		date := time.Date(2025, time.March, 4, 15, 0, 0, 0, time.UTC)
		_, err := svc.RecordSale([]model.SaleItemInput{
			{ProductID: productID, Quantity: dec("1"), UnitPrice: dec("0.60")},
		}, date)
		require.NoError(t, err)

		summaries, err := svc.ListSummaries(0)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.True(t, summaries[0].Date.Equal(date), "want %s, got %s", date, summaries[0].Date)
	})
}

func TestListSummariesNewestFirst(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewSaleService(store, nil, zaptest.NewLogger(t))
		productID := seedProduct(t, store, "Tea", "Beverages", "0.90", "1.50", "30")

		var ids []uint
		for i := 0; i < 3; i++ {
			id, err := svc.RecordSale([]model.SaleItemInput{
				{ProductID: productID, Quantity: dec("1"), UnitPrice: dec("1.50")},
			}, time.Time{})
			require.NoError(t, err)
			ids = append(ids, id)
		}

		summaries, err := svc.ListSummaries(2)
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.Equal(t, ids[2], summaries[0].ID)
		assert.Equal(t, ids[1], summaries[1].ID)
	})
}

func TestConcurrentSalesNeverOversell(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store storage.Store) {
		svc := NewSaleService(store, nil, zaptest.NewLogger(t))
		productID := seedProduct(t, store, "Limited", "Pantry", "1.00", "2.00", "5")

		const workers = 10
		errs := make([]error, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.RecordSale([]model.SaleItemInput{
					{ProductID: productID, Quantity: dec("2"), UnitPrice: dec("2.00")},
				}, time.Time{})
			}(i)
		}
		wg.Wait()

		successes := 0
		for _, err := range errs {
			if err == nil {
				successes++
				continue
			}
			var insufficient *storage.InsufficientStockError
			assert.True(t, errors.As(err, &insufficient), "unexpected error: %v", err)
		}

		// Stock 5, two units per sale: exactly two sales can fit.
		assert.Equal(t, 2, successes)
		assertDec(t, "1", productStock(t, store, productID))
	})
}
