package catalog

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a read-only snapshot of a catalogue entry. The backend owns the
// authoritative record; the client never mutates one outside the admin flows.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Price per kilogram. Decimal end to end so displayed totals are exact.
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	ImageURL  string          `json:"image_url,omitempty"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
	UpdatedAt time.Time       `json:"updated_at,omitempty"`
}

// Key is the product's identifier as used for cart keys.
func (p Product) Key() string {
	return strconv.FormatInt(p.ID, 10)
}

// CreateProductRequest payload of creation (admin).
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// UpdateProductRequest payload of update (admin).
type UpdateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// Snapshot indexes a fetched product list by cart key for price/name
// resolution. It is a point-in-time view: entries can go stale the moment the
// backend changes, which callers must treat as a lookup miss, not an error.
type Snapshot struct {
	byKey map[string]Product
}

func NewSnapshot(products []Product) Snapshot {
	m := make(map[string]Product, len(products))
	for _, p := range products {
		m[p.Key()] = p
	}
	return Snapshot{byKey: m}
}

func (s Snapshot) Lookup(key string) (Product, bool) {
	p, ok := s.byKey[key]
	return p, ok
}

func (s Snapshot) PriceOf(key string) (decimal.Decimal, bool) {
	p, ok := s.byKey[key]
	return p.Price, ok
}

func (s Snapshot) Len() int { return len(s.byKey) }
