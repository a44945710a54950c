package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sncandles/storefront/internal/cart"
	"github.com/sncandles/storefront/internal/checkout"
	"github.com/sncandles/storefront/internal/events"
	"github.com/sncandles/storefront/internal/logging"
)

type CartHandler struct {
	Store    *cart.Store
	Checkout *checkout.Service
	Producer *events.Producer
}

func (h *CartHandler) GetCart(c echo.Context) error {
	state, count := h.Store.Get()
	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"cart":      state,
		"cartCount": count,
	})
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "cart.add")

	var req struct {
		ProductID string `json:"product_id"`
		Name      string `json:"name"`
		Price     string `json:"price"`
		Image     string `json:"image"`
		Quantity  string `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.ProductID == "" {
		return fail(c, http.StatusBadRequest, "product_id is required")
	}

	state, count, err := h.Store.Add(req.ProductID, req.Name, req.Price, req.Image, req.Quantity)
	if err != nil {
		l.Warn("add to cart rejected", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, err.Error())
	}

	publish(c, h.Producer, events.TopicCartEvents, req.ProductID, map[string]interface{}{
		"type":       "cart_item_added",
		"product_id": req.ProductID,
		"cartCount":  count,
	})

	l.Info("item added to cart", "product_id", req.ProductID, "cartCount", count)
	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Item added to cart!",
		"cart":      state,
		"cartCount": count,
	})
}

func (h *CartHandler) PlaceOrder(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "cart.checkout")

	var req struct {
		Name          string `json:"name"`
		Mobile        string `json:"mobile"`
		Pincode       string `json:"pincode"`
		Address       string `json:"address"`
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	shipping := checkout.Shipping{
		Name:    req.Name,
		Mobile:  req.Mobile,
		Pincode: req.Pincode,
		Address: req.Address,
	}
	order, message, err := h.Checkout.PlaceOrder(shipping, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart),
			errors.Is(err, checkout.ErrInvalidPincode),
			errors.Is(err, checkout.ErrInvalidMobile):
			l.Warn("checkout rejected", "status", 400, "error", err)
			return fail(c, http.StatusBadRequest, err.Error())
		default:
			l.Error("checkout failed", "status", 500, "error", err)
			return fail(c, http.StatusInternalServerError, "internal server error")
		}
	}

	publish(c, h.Producer, events.TopicOrderEvents, order.OrderID, map[string]interface{}{
		"type":    "order_placed",
		"orderId": order.OrderID,
		"total":   order.Total,
		"items":   order.Items,
	})

	l.Info("order placed", "orderId", order.OrderID, "total", order.Total)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": message,
		"order":   order,
	})
}
