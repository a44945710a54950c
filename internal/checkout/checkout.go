package checkout

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/sncandles/storefront/internal/cart"
)

var (
	ErrEmptyCart      = errors.New("your cart is empty")
	ErrInvalidPincode = errors.New("please enter a valid 6-digit pincode")
	ErrInvalidMobile  = errors.New("please enter a valid 10-digit mobile number")
)

var (
	pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)
	mobileRe  = regexp.MustCompile(`^[0-9]{10}$`)
)

const orderPrefix = "ORD"

type Shipping struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Pincode string `json:"pincode"`
	Address string `json:"address"`
}

type Payment struct {
	Method string `json:"method"`
}

// Order is built once at checkout and returned to the caller. There is no
// order history store: the response is the only place the order exists.
type Order struct {
	OrderID  string      `json:"orderId"`
	Items    []cart.Item `json:"items"`
	Total    float64     `json:"total"`
	Shipping Shipping    `json:"shipping"`
	Payment  Payment     `json:"payment"`
}

type Service struct {
	Cart *cart.Store
	Now  func() time.Time
}

func NewService(store *cart.Store) *Service {
	return &Service{Cart: store, Now: time.Now}
}

// PlaceOrder runs the checkout gate: empty-cart check, then pincode, then
// mobile, first failure wins and leaves the cart untouched. On success the
// cart is snapshotted into the order and cleared in one atomic step.
func (s *Service) PlaceOrder(sh Shipping, paymentMethod string) (*Order, string, error) {
	if s.Cart.Count() == 0 {
		return nil, "", ErrEmptyCart
	}
	if !pincodeRe.MatchString(sh.Pincode) {
		return nil, "", ErrInvalidPincode
	}
	if !mobileRe.MatchString(sh.Mobile) {
		return nil, "", ErrInvalidMobile
	}

	items, total := s.Cart.Flush()
	if len(items) == 0 {
		return nil, "", ErrEmptyCart
	}

	order := &Order{
		OrderID:  orderID(s.Now()),
		Items:    items,
		Total:    total,
		Shipping: sh,
		Payment:  Payment{Method: paymentMethod},
	}
	message := fmt.Sprintf("Order placed successfully! Your order ID is %s.", order.OrderID)
	return order, message, nil
}

// orderID is the fixed prefix plus the last six digits of the millisecond
// clock. Not globally unique across checkouts faster than clock resolution.
func orderID(now time.Time) string {
	digits := fmt.Sprintf("%d", now.UnixMilli())
	if len(digits) > 6 {
		digits = digits[len(digits)-6:]
	}
	return orderPrefix + digits
}
