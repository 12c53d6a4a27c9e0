package cart

import (
	"sync"

	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Storage is the durable local persistence port. Persistence is best-effort:
// a write failure never rolls back the in-memory state.
type Storage interface {
	Save(lines []Line) error
	Load() ([]Line, error)
}

type PriceLookup func(productID string) (int64, error)

// Store owns the cart state. No ambient globals: callers hold the one Store
// for their session and subscribe for change notifications.
type Store struct {
	mu          sync.Mutex
	quantities  map[string]int
	order       []string
	storage     Storage
	log         *logger.Logger
	subscribers []func()
}

func NewStore(storage Storage, log *logger.Logger) *Store {
	s := &Store{
		quantities: make(map[string]int),
		storage:    storage,
		log:        log,
	}

	if storage != nil {
		lines, err := storage.Load()
		if err != nil {
			log.Warn("Failed to load persisted cart", "error", err)
		}
		for _, line := range lines {
			if line.Quantity < 1 {
				continue
			}
			if _, ok := s.quantities[line.ProductID]; !ok {
				s.order = append(s.order, line.ProductID)
			}
			s.quantities[line.ProductID] = line.Quantity
		}
	}

	return s
}

func (s *Store) Add(productID string, qty int) {
	if qty < 1 {
		return
	}

	s.mu.Lock()
	if _, ok := s.quantities[productID]; !ok {
		s.order = append(s.order, productID)
	}
	s.quantities[productID] += qty
	s.mu.Unlock()

	s.persist()
	s.notify()
}

func (s *Store) Remove(productID string) {
	s.mu.Lock()
	if _, ok := s.quantities[productID]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.quantities, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.persist()
	s.notify()
}

// SetQuantity ignores quantities below 1: the existing quantity stays as it
// was and the line is not removed.
func (s *Store) SetQuantity(productID string, qty int) {
	if qty < 1 {
		return
	}

	s.mu.Lock()
	if _, ok := s.quantities[productID]; !ok {
		s.mu.Unlock()
		return
	}
	s.quantities[productID] = qty
	s.mu.Unlock()

	s.persist()
	s.notify()
}

func (s *Store) Items() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]Line, 0, len(s.order))
	for _, id := range s.order {
		lines = append(lines, Line{ProductID: id, Quantity: s.quantities[id]})
	}
	return lines
}

func (s *Store) Total(prices PriceLookup) (int64, error) {
	var total int64
	for _, line := range s.Items() {
		price, err := prices(line.ProductID)
		if err != nil {
			return 0, err
		}
		total += price * int64(line.Quantity)
	}
	return total, nil
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.quantities = make(map[string]int)
	s.order = nil
	s.mu.Unlock()

	s.persist()
	s.notify()
}

// Subscribe registers a change observer. Delivery is not guaranteed;
// observers re-read the latest state on each call.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *Store) persist() {
	if s.storage == nil {
		return
	}
	if err := s.storage.Save(s.Items()); err != nil {
		s.log.Warn("Failed to persist cart", "error", err)
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
