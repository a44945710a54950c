package cart

import (
	"errors"
	"strconv"
	"strings"
	"sync"
)

// CartID is the id of the single process-wide cart. There is no per-user
// scoping: every caller shares this cart, which matches the mock-store
// behaviour the service replaces.
const CartID = "MOCK_CART_001"

var (
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

type Item struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

type Cart struct {
	Items  []Item `json:"items"`
	CartID string `json:"cartId"`
}

// Store owns the cart. Every read and write goes through the mutex, so
// concurrent adds to the same product never lose an increment.
type Store struct {
	mu    sync.Mutex
	items []Item
}

func NewStore() *Store {
	return &Store{items: []Item{}}
}

// NormalizePrice strips every rune that is not a digit or a decimal point
// before parsing, so inputs like "₹500" or "Rs. 1,299.50" are accepted.
// Unparseable results are rejected rather than coerced to zero.
func NormalizePrice(raw string) (float64, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, ErrInvalidPrice
	}
	price, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || price < 0 {
		return 0, ErrInvalidPrice
	}
	return price, nil
}

func ParseQuantity(raw string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || qty < 1 {
		return 0, ErrInvalidQuantity
	}
	return qty, nil
}

// Add puts a line item into the cart. A repeated product_id increments the
// existing line in place, so the number of distinct items stays constant.
// Price and quantity arrive as free-form strings from the client.
func (s *Store) Add(productID, name, rawPrice, image, rawQuantity string) (Cart, int, error) {
	price, err := NormalizePrice(rawPrice)
	if err != nil {
		return Cart{}, 0, err
	}
	qty, err := ParseQuantity(rawQuantity)
	if err != nil {
		return Cart{}, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, Item{
			ProductID: productID,
			Name:      name,
			Price:     price,
			Image:     image,
			Quantity:  qty,
		})
	}

	return s.snapshotLocked(), s.countLocked(), nil
}

// Get returns the current cart and the summed quantity. Side-effect free.
func (s *Store) Get() (Cart, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), s.countLocked()
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked()
}

// Flush snapshots the items with their subtotal and empties the cart in one
// critical section. Checkout uses this so a racing add can never land between
// the order snapshot and the clear.
func (s *Store) Flush() ([]Item, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)

	var subtotal float64
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
	}

	s.items = s.items[:0]
	return items, subtotal
}

func (s *Store) snapshotLocked() Cart {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return Cart{Items: items, CartID: CartID}
}

func (s *Store) countLocked() int {
	count := 0
	for _, it := range s.items {
		count += it.Quantity
	}
	return count
}
