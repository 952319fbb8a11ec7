package cart

import (
	"errors"
	"sync"

	"modaai/internal/models"
)

// ErrIndexOutOfRange is returned when removing a position the cart does not
// have.
var ErrIndexOutOfRange = errors.New("cart index out of range")

// LineItem is a full denormalized snapshot of a product at the moment it was
// added. Later edits or deletion of the catalog record do not reach into
// carts; the shopper bought what they saw.
type LineItem struct {
	ProductID    string `json:"productId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	Category     string `json:"category"`
	ImageURL     string `json:"imageUrl"`
	AIImageURL   string `json:"aiImageUrl,omitempty"`
	AIProductURL string `json:"aiProductUrl,omitempty"`
}

// Snapshot copies the fields a cart line needs. Cost is deliberately not
// copied; it never leaves the admin surface.
func Snapshot(p models.Product) LineItem {
	return LineItem{
		ProductID:    p.ID.Hex(),
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Category:     p.Category,
		ImageURL:     p.ImageURL,
		AIImageURL:   p.AIImageURL,
		AIProductURL: p.AIProductURL,
	}
}

// Store holds one transient cart per session. Nothing is persisted; carts
// vanish on restart and after a successful checkout. Adding the same product
// twice yields two independent lines.
type Store struct {
	mu    sync.Mutex
	carts map[string][]LineItem
}

func NewStore() *Store {
	return &Store{carts: make(map[string][]LineItem)}
}

func (s *Store) Add(session string, item LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[session] = append(s.carts[session], item)
}

// RemoveAt drops the line at position i, keeping the remaining lines in their
// original relative order.
func (s *Store) RemoveAt(session string, i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[session]
	if i < 0 || i >= len(items) {
		return ErrIndexOutOfRange
	}
	s.carts[session] = append(items[:i], items[i+1:]...)
	return nil
}

// Items returns a copy of the session's cart lines in insertion order.
func (s *Store) Items(session string) []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[session]
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

// Total is the plain sum of unit prices: no quantity merging, no tax, no
// discounts.
func (s *Store) Total(session string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, item := range s.carts[session] {
		total += item.Price
	}
	return total
}

func (s *Store) Clear(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, session)
}
