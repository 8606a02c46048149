package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Bateyjosue/e-commerce-platform-backend/internal/core/domain"
	"github.com/Bateyjosue/e-commerce-platform-backend/internal/port"
)

// fakeStore is an in-memory DatabaseRepository. A unit of work takes the
// store lock on Begin and releases it on Commit/Rollback, which mirrors
// the row-lock serialization the MySQL adapter gets from InnoDB.
type fakeStore struct {
	mu       sync.Mutex
	products map[string]domain.Product
	orders   []domain.Order

	beginCalls  int
	searchCalls int
	countCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: make(map[string]domain.Product)}
}

func (s *fakeStore) seed(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *fakeStore) stockOf(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Stock
}

func (s *fakeStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type fakeUnitOfWork struct {
	store      *fakeStore
	decrements map[string]int
	orders     []domain.Order
	done       bool
}

func (s *fakeStore) Begin(ctx context.Context) (port.UnitOfWork, error) {
	s.mu.Lock()
	s.beginCalls++
	return &fakeUnitOfWork{store: s, decrements: make(map[string]int)}, nil
}

func (u *fakeUnitOfWork) Commit() error {
	if u.done {
		return nil
	}
	u.done = true
	for id, qty := range u.decrements {
		p := u.store.products[id]
		p.Stock -= qty
		u.store.products[id] = p
	}
	u.store.orders = append(u.store.orders, u.orders...)
	u.store.mu.Unlock()
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	u.store.mu.Unlock()
	return nil
}

func (s *fakeStore) GetProductForUpdate(ctx context.Context, uow port.UnitOfWork, id string) (*domain.Product, error) {
	u := uow.(*fakeUnitOfWork)
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	p.Stock -= u.decrements[id]
	return &p, nil
}

func (s *fakeStore) DecrementStock(ctx context.Context, uow port.UnitOfWork, productID string, quantity int) (bool, error) {
	u := uow.(*fakeUnitOfWork)
	p, ok := s.products[productID]
	if !ok {
		return false, nil
	}
	if p.Stock-u.decrements[productID] < quantity {
		return false, nil
	}
	u.decrements[productID] += quantity
	return true, nil
}

func (s *fakeStore) CreateOrder(ctx context.Context, uow port.UnitOfWork, order domain.Order) error {
	u := uow.(*fakeUnitOfWork)
	u.orders = append(u.orders, order)
	return nil
}

func (s *fakeStore) OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateProduct(ctx context.Context, p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
	return nil
}

func (s *fakeStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *fakeStore) UpdateProduct(ctx context.Context, p domain.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return false, nil
	}
	s.products[p.ID] = p
	return true, nil
}

func (s *fakeStore) DeleteProduct(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

func (s *fakeStore) matching(search string) []domain.Product {
	var out []domain.Product
	needle := strings.ToLower(search)
	for _, p := range s.products {
		if search == "" || strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *fakeStore) SearchProducts(ctx context.Context, query domain.ProductQuery) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchCalls++

	q := query.WithDefaults()
	all := s.matching(q.Search)

	skip := (q.Page - 1) * q.Limit
	if skip >= len(all) {
		return nil, nil
	}
	end := skip + q.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], nil
}

func (s *fakeStore) CountProducts(ctx context.Context, search string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countCalls++
	return len(s.matching(search)), nil
}

// fakeCache is an in-memory CacheRepository with injectable failures.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]*domain.ProductPage
	ttls    map[string]time.Duration
	flushes int

	getErr   error
	setErr   error
	flushErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries: make(map[string]*domain.ProductPage),
		ttls:    make(map[string]time.Duration),
	}
}

func (c *fakeCache) GetProductPage(ctx context.Context, key string) (*domain.ProductPage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[key], nil
}

func (c *fakeCache) SetProductPage(ctx context.Context, key string, page *domain.ProductPage, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = page
	c.ttls[key] = ttl
	return nil
}

func (c *fakeCache) FlushProducts(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.flushErr != nil {
		return c.flushErr
	}
	c.flushes++
	c.entries = make(map[string]*domain.ProductPage)
	c.ttls = make(map[string]time.Duration)
	return nil
}

func (c *fakeCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
