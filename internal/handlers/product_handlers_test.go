package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/sncandles/storefront/internal/models"
)

func createProduct(t *testing.T, e *echo.Echo, h *ProductHandler, name string, price float64) models.Product {
	t.Helper()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/products", map[string]interface{}{
		"name":        name,
		"description": "hand-poured soy wax",
		"price":       price,
		"image":       "/Assets/" + name + ".jpg",
		"page":        "candles.html",
	})
	require.NoError(t, h.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var product models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	require.NotZero(t, product.ID)
	return product
}

func TestCreateAndGetProduct(t *testing.T) {
	e := echo.New()
	h := &ProductHandler{DB: newTestDB(t)}

	created := createProduct(t, e, h, "Lavender Candle", 500)

	rec, c := doJSONRequest(t, e, http.MethodGet, "/api/products/"+strconv.Itoa(created.ID), nil)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(created.ID))
	require.NoError(t, h.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Lavender Candle", got.Name)
	require.Equal(t, float64(500), got.Price)
}

func TestGetProductsPagination(t *testing.T) {
	e := echo.New()
	h := &ProductHandler{DB: newTestDB(t)}

	for i := 0; i < 15; i++ {
		createProduct(t, e, h, "Candle "+strconv.Itoa(i), float64(100+i))
	}

	rec, c := doJSONRequest(t, e, http.MethodGet, "/api/products?page=2&size=10", nil)
	require.NoError(t, h.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Product `json:"data"`
		Meta struct {
			Page    int   `json:"page"`
			Total   int64 `json:"total"`
			HasPrev bool  `json:"has_prev"`
			HasNext bool  `json:"has_next"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 5)
	require.EqualValues(t, 15, resp.Meta.Total)
	require.True(t, resp.Meta.HasPrev)
	require.False(t, resp.Meta.HasNext)
}

func TestPatchProduct(t *testing.T) {
	e := echo.New()
	h := &ProductHandler{DB: newTestDB(t)}

	created := createProduct(t, e, h, "Lavender Candle", 500)

	rec, c := doJSONRequest(t, e, http.MethodPatch, "/api/products/"+strconv.Itoa(created.ID), map[string]interface{}{
		"name":        "Lavender Candle XL",
		"description": "bigger",
		"price":       750.0,
		"page":        "candles.html",
	})
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(created.ID))
	require.NoError(t, h.PatchProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Lavender Candle XL", got.Name)
	require.Equal(t, float64(750), got.Price)
}

func TestDeleteProduct(t *testing.T) {
	e := echo.New()
	h := &ProductHandler{DB: newTestDB(t)}

	created := createProduct(t, e, h, "Lavender Candle", 500)

	rec, c := doJSONRequest(t, e, http.MethodDelete, "/api/products/"+strconv.Itoa(created.ID), nil)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(created.ID))
	require.NoError(t, h.DeleteProduct(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	recGet, cGet := doJSONRequest(t, e, http.MethodGet, "/api/products/"+strconv.Itoa(created.ID), nil)
	cGet.SetParamNames("id")
	cGet.SetParamValues(strconv.Itoa(created.ID))
	require.NoError(t, h.GetProduct(cGet))
	require.Equal(t, http.StatusNotFound, recGet.Code)
}

func TestSearchFallbackWithoutES(t *testing.T) {
	e := echo.New()
	db := newTestDB(t)
	ph := &ProductHandler{DB: db}
	sh := &SearchHandler{DB: db}

	createProduct(t, e, ph, "Lavender Candle", 500)
	createProduct(t, e, ph, "Vanilla Candle", 300)
	createProduct(t, e, ph, "Wax Melter", 1200)

	rec, c := doJSONRequest(t, e, http.MethodGet, "/api/search?q=Candle", nil)
	require.NoError(t, sh.Search(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Total    int64            `json:"total"`
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.EqualValues(t, 2, resp.Total)
	require.Len(t, resp.Products, 2)

	recEmpty, cEmpty := doJSONRequest(t, e, http.MethodGet, "/api/search", nil)
	require.NoError(t, sh.Search(cEmpty))
	require.Equal(t, http.StatusBadRequest, recEmpty.Code)
}
