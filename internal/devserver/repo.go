package devserver

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/usrahul1/trin/internal/catalog"
	"github.com/usrahul1/trin/internal/order"
)

var (
	errProductNotFound = errors.New("product not found")
	errOrderNotFound   = errors.New("order not found")
)

// productRepo is a mutex-guarded in-memory product collection. The dev
// server exists to honor the HTTP contract, not to persist anything.
type productRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]catalog.Product
}

func newProductRepo() *productRepo {
	return &productRepo{nextID: 1, items: make(map[int64]catalog.Product)}
}

func (r *productRepo) Create(p catalog.Product) catalog.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.items[p.ID] = p
	return p
}

func (r *productRepo) Get(id int64) (catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return catalog.Product{}, errProductNotFound
	}
	return p, nil
}

func (r *productRepo) List() []catalog.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]catalog.Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *productRepo) Update(id int64, in catalog.UpdateProductRequest) (catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return catalog.Product{}, errProductNotFound
	}
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock
	p.ImageURL = in.ImageURL
	p.UpdatedAt = time.Now().UTC()
	r.items[id] = p
	return p, nil
}

func (r *productRepo) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return errProductNotFound
	}
	delete(r.items, id)
	return nil
}

// orderRepo mirrors productRepo for orders. Line items are stored exactly as
// submitted; only status ever changes afterwards.
type orderRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]order.Order
}

func newOrderRepo() *orderRepo {
	return &orderRepo{nextID: 1, items: make(map[int64]order.Order)}
}

func (r *orderRepo) Create(o order.Order) order.Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	o.ID = r.nextID
	r.nextID++
	o.Status = order.StatusPending
	o.CreatedAt = time.Now().UTC()
	r.items[o.ID] = o
	return o
}

func (r *orderRepo) Get(id int64) (order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.items[id]
	if !ok {
		return order.Order{}, errOrderNotFound
	}
	return o, nil
}

func (r *orderRepo) List() []order.Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]order.Order, 0, len(r.items))
	for _, o := range r.items {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *orderRepo) UpdateStatus(id int64, status order.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.items[id]
	if !ok {
		return errOrderNotFound
	}
	// Any known status is accepted; transition legality is not checked here,
	// matching the backend this server stands in for.
	o.Status = status
	r.items[id] = o
	return nil
}
