package shopclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client talks to the storefront API. It mirrors the browser front-end:
// it re-fetches cart state after every mutating call and pre-validates
// shipping fields before sending them.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// APIError carries a server-rejected request's message so callers can show
// it inline next to the originating form.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

type Cart struct {
	Items  []CartItem `json:"items"`
	CartID string     `json:"cartId"`
}

type CartState struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Cart      Cart   `json:"cart"`
	CartCount int    `json:"cartCount"`
}

type Shipping struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Pincode string `json:"pincode"`
	Address string `json:"address"`
}

type Order struct {
	OrderID  string     `json:"orderId"`
	Items    []CartItem `json:"items"`
	Total    float64    `json:"total"`
	Shipping Shipping   `json:"shipping"`
	Payment  struct {
		Method string `json:"method"`
	} `json:"payment"`
}

type CheckoutResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Order   Order  `json:"order"`
}

type AuthResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	} `json:"user"`
	Token string `json:"token"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Image     string `json:"image"`
	Quantity  string `json:"quantity"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var failure struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		if failure.Message == "" {
			failure.Message = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Message: failure.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) GetCart(ctx context.Context) (*CartState, error) {
	var state CartState
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) AddToCart(ctx context.Context, item AddItemRequest) (*CartState, error) {
	var state CartState
	if err := c.do(ctx, http.MethodPost, "/api/cart/add", item, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// AddFromPage plays the add-to-cart click: it derives the product id from the
// page and product name, cleans the raw price text and sends the item.
func (c *Client) AddFromPage(ctx context.Context, pageID, name, rawPrice, image string, quantity int) (*CartState, error) {
	return c.AddToCart(ctx, AddItemRequest{
		ProductID: ProductID(pageID, name),
		Name:      name,
		Price:     CleanPrice(rawPrice),
		Image:     image,
		Quantity:  strconv.Itoa(quantity),
	})
}

// Checkout pre-validates the shipping fields with the same rules as the
// server before submitting. Defense in depth, not a substitute: the server
// validates again.
func (c *Client) Checkout(ctx context.Context, shipping Shipping, paymentMethod string) (*CheckoutResult, error) {
	if err := ValidateShipping(shipping); err != nil {
		return nil, err
	}
	payload := struct {
		Shipping
		PaymentMethod string `json:"paymentMethod"`
	}{Shipping: shipping, PaymentMethod: paymentMethod}

	var result CheckoutResult
	if err := c.do(ctx, http.MethodPost, "/api/checkout", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Register(ctx context.Context, fullName, email, password string) (*AuthResult, error) {
	payload := map[string]string{"fullName": fullName, "email": email, "password": password}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/register", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	payload := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/login", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Contact(ctx context.Context, name, email, message string) (string, error) {
	payload := map[string]string{"name": name, "email": email, "message": message}
	var result struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/contact", payload, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

func (c *Client) Subscribe(ctx context.Context, email string) (string, error) {
	payload := map[string]string{"email": email}
	var result struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/subscribe", payload, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}
