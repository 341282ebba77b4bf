package cart

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usrahul1/trin/internal/catalog"
	"github.com/usrahul1/trin/internal/localstore"
)

func newTestStore(t *testing.T) (*Store, localstore.Store) {
	t.Helper()
	local, err := localstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	s := NewStore(local, zerolog.Nop())
	require.NoError(t, s.Load())
	return s, local
}

func testSnapshot() catalog.Snapshot {
	return catalog.NewSnapshot([]catalog.Product{
		{ID: 7, Name: "Tomatoes", Price: decimal.RequireFromString("4.50")},
		{ID: 9, Name: "Mangoes", Price: decimal.RequireFromString("10.00")},
	})
}

func TestAddRemoveClampsAtZero(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Add("7"))
	require.NoError(t, s.Add("7"))
	require.NoError(t, s.Add("9"))
	assert.Equal(t, 2, s.Quantity("7"))
	assert.Equal(t, 3, s.TotalItems())

	require.NoError(t, s.Remove("7"))
	require.NoError(t, s.Remove("7"))
	// extra removes are no-ops, never negative
	require.NoError(t, s.Remove("7"))
	assert.Equal(t, 0, s.Quantity("7"))
	assert.Equal(t, 1, s.TotalItems())

	// removing a product never in the cart is not an error
	require.NoError(t, s.Remove("404"))
}

func TestRemoveLastKilogramDeletesKey(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Add("7"))
	require.NoError(t, s.Remove("7"))

	assert.Equal(t, 0, s.Len(), "key must be removed entirely, not zeroed")
	assert.Empty(t, s.Snapshot())
}

func TestPersistRehydrateRoundTrip(t *testing.T) {
	s, local := newTestStore(t)

	require.NoError(t, s.Add("7"))
	require.NoError(t, s.Add("7"))
	require.NoError(t, s.Add("9"))

	reloaded := NewStore(local, zerolog.Nop())
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 2, reloaded.Quantity("7"))
	assert.Equal(t, 1, reloaded.Quantity("9"))
	assert.Equal(t, s.Snapshot(), reloaded.Snapshot())
}

func TestLoadCorruptValueStartsEmpty(t *testing.T) {
	local, err := localstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, local.Set(localstore.KeyCart, []byte("{not json")))

	s := NewStore(local, zerolog.Nop())
	require.NoError(t, s.Load(), "corruption is recoverable, not fatal")
	assert.Equal(t, 0, s.Len())
}

func TestLoadDropsNonPositiveQuantities(t *testing.T) {
	local, err := localstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, local.Set(localstore.KeyCart, []byte(`{"7":2,"9":0,"11":-3}`)))

	s := NewStore(local, zerolog.Nop())
	require.NoError(t, s.Load())
	assert.Equal(t, 2, s.Quantity("7"))
	assert.Equal(t, 1, s.Len())
}

func TestSubtotalScenario(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Add("7"))
	require.NoError(t, s.Add("7"))
	require.NoError(t, s.Add("9"))

	got := s.Subtotal(testSnapshot())
	assert.Equal(t, "19.00", got.StringFixed(2))
}

func TestSubtotalSkipsUnknownProducts(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Add("7"))
	require.NoError(t, s.Add("404"))

	got := s.Subtotal(testSnapshot())
	assert.Equal(t, "4.50", got.StringFixed(2), "unknown products contribute zero")
}

func TestSubtotalLinearOverDisjointCarts(t *testing.T) {
	snap := testSnapshot()

	a, _ := newTestStore(t)
	require.NoError(t, a.Add("7"))
	require.NoError(t, a.Add("7"))

	b, _ := newTestStore(t)
	require.NoError(t, b.Add("9"))

	union, _ := newTestStore(t)
	require.NoError(t, union.Add("7"))
	require.NoError(t, union.Add("7"))
	require.NoError(t, union.Add("9"))

	sum := a.Subtotal(snap).Add(b.Subtotal(snap))
	assert.True(t, union.Subtotal(snap).Equal(sum),
		"subtotal(a ∪ b) = %s, subtotal(a)+subtotal(b) = %s", union.Subtotal(snap), sum)
}

func TestClearEmptiesMemoryAndStorage(t *testing.T) {
	s, local := newTestStore(t)
	require.NoError(t, s.Add("7"))

	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Len())

	reloaded := NewStore(local, zerolog.Nop())
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 0, reloaded.Len())
}
