package ordering

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/orinoco-shop/orinoco/internal/catalog"
	"github.com/orinoco-shop/orinoco/internal/domain"
)

// fakeCatalogRepo serves products from a map. Per-id delays let tests
// force lookup completion order to differ from input order.
type fakeCatalogRepo struct {
	mu       sync.Mutex
	products map[string]domain.Product
	delays   map[string]time.Duration
	err      error
	lookups  int
}

func (f *fakeCatalogRepo) FindAll(ctx context.Context, cat domain.Category) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalogRepo) FindByID(ctx context.Context, cat domain.Category, id string) (*domain.Product, error) {
	f.mu.Lock()
	f.lookups++
	delay := f.delays[id]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, errors.Wrapf(catalog.ErrProductNotFound, "%s %s", cat, id)
	}
	return &p, nil
}

type fakeOrderRepo struct {
	mu        sync.Mutex
	inserted  []*domain.Order
	insertErr error

	orders map[int64]*domain.Order

	listOrders []domain.Order
	listTotal  int64
	listQuery  ListQuery
	listErr    error

	stats    *domain.OrderStats
	statsErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*domain.Order)}
}

func (f *fakeOrderRepo) Insert(ctx context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, order)
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, errors.Wrapf(ErrOrderNotFound, "id %d", id)
	}
	return order, nil
}

func (f *fakeOrderRepo) List(ctx context.Context, q ListQuery) ([]domain.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listQuery = q
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.listOrders, f.listTotal, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, at time.Time) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, errors.Wrapf(ErrOrderNotFound, "id %d", id)
	}
	order.Status = status
	order.UpdatedAt = at
	return order, nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[id]; !ok {
		return errors.Wrapf(ErrOrderNotFound, "id %d", id)
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) Stats(ctx context.Context) (*domain.OrderStats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return f.stats, nil
}

func (f *fakeOrderRepo) insertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inserted)
}
