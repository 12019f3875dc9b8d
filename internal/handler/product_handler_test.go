package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Informaticspro/proyecto-factura/internal/service"
	"github.com/Informaticspro/proyecto-factura/internal/storage/boltdb"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log := zaptest.NewLogger(t)
	store, err := boltdb.Open(filepath.Join(t.TempDir(), "test.bolt"), log)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	products := NewProductHandler(service.NewProductService(store, nil, log))
	sales := NewSaleHandler(service.NewSaleService(store, nil, log))

	app := fiber.New()
	api := app.Group("/api")
	api.Get("/products", products.GetProducts)
	api.Post("/products", products.CreateProduct)
	api.Put("/products/:id", products.UpdateProduct)
	api.Delete("/products/:id", products.DeleteProduct)
	api.Post("/sales", sales.RecordSale)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestCreateProductEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/products",
		`{"name":"Coffee","category":"Beverages","cost_price":"1.20","sale_price":"2.00","unit":"unit","stock":"10"}`)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 1, body["id"])

	resp, _ = doJSON(t, app, "POST", "/api/products",
		`{"name":"","sale_price":"2.00"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateProductEndpointErrors(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "PUT", "/api/products/42", `{"name":"Ghost"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, body["error"])

	resp, _ = doJSON(t, app, "PUT", "/api/products/abc", `{"name":"x"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteProductConflictMapsTo409(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/products",
		`{"name":"Sold","cost_price":"1.00","sale_price":"2.00","unit":"unit","stock":"5"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/sales",
		`{"items":[{"product_id":1,"quantity":"1","unit_price":"2.00"}]}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, "DELETE", "/api/products/1", "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, body["error"], "referenced")
}

func TestRecordSaleEndpointErrors(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/sales", `{"items":[]}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	_, _ = doJSON(t, app, "POST", "/api/products",
		`{"name":"Rare","cost_price":"1.00","sale_price":"2.00","unit":"unit","stock":"1"}`)
	resp, _ = doJSON(t, app, "POST", "/api/sales",
		`{"items":[{"product_id":1,"quantity":"3","unit_price":"2.00"}]}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
