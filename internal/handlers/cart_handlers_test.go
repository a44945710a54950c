package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/sncandles/storefront/internal/cart"
	"github.com/sncandles/storefront/internal/checkout"
)

type cartStateResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Cart      cart.Cart `json:"cart"`
	CartCount int       `json:"cartCount"`
}

func newCartHandler() *CartHandler {
	store := cart.NewStore()
	return &CartHandler{Store: store, Checkout: checkout.NewService(store)}
}

func TestGetCartEmpty(t *testing.T) {
	e := echo.New()
	h := newCartHandler()

	rec, c := doJSONRequest(t, e, http.MethodGet, "/api/cart", nil)
	require.NoError(t, h.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Empty(t, resp.Cart.Items)
	require.Zero(t, resp.CartCount)
	require.Equal(t, cart.CartID, resp.Cart.CartID)
}

func TestAddToCartHTTP(t *testing.T) {
	e := echo.New()
	h := newCartHandler()

	payload := map[string]string{
		"product_id": "candles-lavender-candle",
		"name":       "Lavender Candle",
		"price":      "₹500",
		"image":      "/Assets/lavender.jpg",
		"quantity":   "2",
	}
	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/cart/add", payload)
	require.NoError(t, h.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, 2, resp.CartCount)
	require.Len(t, resp.Cart.Items, 1)
	require.Equal(t, float64(500), resp.Cart.Items[0].Price)
}

func TestAddToCartRejectsMalformed(t *testing.T) {
	e := echo.New()
	h := newCartHandler()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/cart/add", map[string]string{
		"product_id": "x",
		"name":       "Candle",
		"price":      "not a price",
		"quantity":   "1",
	})
	require.NoError(t, h.AddToCart(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec2, c2 := doJSONRequest(t, e, http.MethodPost, "/api/cart/add", map[string]string{
		"name":     "Candle",
		"price":    "500",
		"quantity": "1",
	})
	require.NoError(t, h.AddToCart(c2))
	require.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestCheckoutScenario(t *testing.T) {
	e := echo.New()
	h := newCartHandler()

	add := func(quantity string) {
		rec, c := doJSONRequest(t, e, http.MethodPost, "/api/cart/add", map[string]string{
			"product_id": "A",
			"name":       "Lavender Candle",
			"price":      "₹500",
			"quantity":   quantity,
		})
		require.NoError(t, h.AddToCart(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	add("1")
	add("2")

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/checkout", map[string]string{
		"name":          "Asha",
		"mobile":        "9876543210",
		"pincode":       "560001",
		"address":       "12 MG Road",
		"paymentMethod": "cod",
	})
	require.NoError(t, h.PlaceOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool           `json:"success"`
		Message string         `json:"message"`
		Order   checkout.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, float64(1500), resp.Order.Total)
	require.Len(t, resp.Order.Items, 1)
	require.Equal(t, 3, resp.Order.Items[0].Quantity)
	require.Contains(t, resp.Message, resp.Order.OrderID)

	recCart, cCart := doJSONRequest(t, e, http.MethodGet, "/api/cart", nil)
	require.NoError(t, h.GetCart(cCart))
	var state cartStateResponse
	require.NoError(t, json.Unmarshal(recCart.Body.Bytes(), &state))
	require.Empty(t, state.Cart.Items)
	require.Zero(t, state.CartCount)
}

func TestCheckoutRejections(t *testing.T) {
	e := echo.New()
	h := newCartHandler()

	// empty cart
	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/checkout", map[string]string{
		"mobile":  "9876543210",
		"pincode": "560001",
	})
	require.NoError(t, h.PlaceOrder(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, checkout.ErrEmptyCart.Error(), resp.Message)

	// invalid pincode, cart stays populated
	_, _, err := h.Store.Add("A", "Candle", "500", "", "1")
	require.NoError(t, err)

	rec2, c2 := doJSONRequest(t, e, http.MethodPost, "/api/checkout", map[string]string{
		"mobile":  "9876543210",
		"pincode": "56001",
	})
	require.NoError(t, h.PlaceOrder(c2))
	require.Equal(t, http.StatusBadRequest, rec2.Code)

	var resp2 Response
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &resp2))
	require.Equal(t, checkout.ErrInvalidPincode.Error(), resp2.Message)
	require.Equal(t, 1, h.Store.Count())
}
