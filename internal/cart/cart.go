// Package cart holds the client-side record of purchase intent: product key →
// requested kilograms. Every mutation persists synchronously to the local
// store under a fixed key, and a corrupt stored value degrades to an empty
// cart rather than taking the client down.
package cart

import (
	"encoding/json"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/usrahul1/trin/internal/catalog"
	"github.com/usrahul1/trin/internal/localstore"
)

// Store is the in-memory cart plus its persistence. Quantities are always
// ≥ 1 for present keys; a decrement to zero removes the key entirely.
type Store struct {
	items map[string]int
	local localstore.Store
	log   zerolog.Logger
}

func NewStore(local localstore.Store, log zerolog.Logger) *Store {
	return &Store{
		items: make(map[string]int),
		local: local,
		log:   log,
	}
}

// Load rehydrates the cart from the local store. A missing key means an
// empty cart; a value that fails to parse is discarded with a warning and
// also yields an empty cart. Load never fails the caller for bad data.
func (s *Store) Load() error {
	s.items = make(map[string]int)

	raw, ok, err := s.local.Get(localstore.KeyCart)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	var parsed map[string]int
	if err := json.Unmarshal(raw, &parsed); err != nil {
		s.log.Warn().Err(err).Msg("cart: stored value corrupt, starting empty")
		return nil
	}
	for key, qty := range parsed {
		if qty < 1 {
			s.log.Warn().Str("product", key).Int("quantity", qty).
				Msg("cart: dropping stored entry with non-positive quantity")
			continue
		}
		s.items[key] = qty
	}
	return nil
}

// Save persists the full cart. Called by every mutator; exported so callers
// that batch edits through Snapshot-restore flows can force a write.
func (s *Store) Save() error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return err
	}
	return s.local.Set(localstore.KeyCart, raw)
}

// Add increments the quantity for productKey by one kilogram (absent → 1).
func (s *Store) Add(productKey string) error {
	s.items[productKey]++
	return s.Save()
}

// Remove decrements the quantity by one; at zero the key is deleted.
// Removing an absent product is a no-op.
func (s *Store) Remove(productKey string) error {
	qty, ok := s.items[productKey]
	if !ok {
		return nil
	}
	if qty <= 1 {
		delete(s.items, productKey)
	} else {
		s.items[productKey] = qty - 1
	}
	return s.Save()
}

// Clear empties the cart in memory and in the local store.
func (s *Store) Clear() error {
	s.items = make(map[string]int)
	return s.local.Delete(localstore.KeyCart)
}

// Quantity returns the requested kilograms for a product, zero if absent.
func (s *Store) Quantity(productKey string) int {
	return s.items[productKey]
}

// TotalItems is the sum of all quantities.
func (s *Store) TotalItems() int {
	total := 0
	for _, qty := range s.items {
		total += qty
	}
	return total
}

// Len is the number of distinct products in the cart.
func (s *Store) Len() int { return len(s.items) }

// Subtotal prices the cart against a catalogue snapshot. Entries whose
// product is missing from the snapshot contribute zero; that is a stale-data
// condition worth a warning, not an error.
func (s *Store) Subtotal(snap catalog.Snapshot) decimal.Decimal {
	sum := decimal.Zero
	for key, qty := range s.items {
		price, ok := snap.PriceOf(key)
		if !ok {
			s.log.Warn().Str("product", key).
				Msg("cart: product missing from catalogue snapshot, pricing as zero")
			continue
		}
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return sum
}

// Snapshot returns a copy of the cart contents with keys sorted, so callers
// iterate deterministically.
func (s *Store) Snapshot() []Entry {
	keys := make([]string, 0, len(s.items))
	for key := range s.items {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]Entry, 0, len(keys))
	for _, key := range keys {
		out = append(out, Entry{ProductKey: key, Quantity: s.items[key]})
	}
	return out
}

// Entry is one cart line in a Snapshot.
type Entry struct {
	ProductKey string
	Quantity   int
}
