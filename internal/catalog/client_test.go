package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDecodesProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":7,"name":"Tomatoes","price":4.5,"stock":40},
			{"id":9,"name":"Mangoes","price":10,"stock":25}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	products, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(7), products[0].ID)
	assert.Equal(t, "4.50", products[0].Price.StringFixed(2))
	assert.Equal(t, "7", products[0].Key())
}

func TestGetDistinguishesNotFoundFromFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/products/7":
			_, _ = w.Write([]byte(`{"id":7,"name":"Tomatoes","price":4.5,"stock":40}`))
		case "/api/products/404":
			http.Error(w, `{"error":"product not found"}`, http.StatusNotFound)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)

	p, err := c.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Tomatoes", p.Name)

	_, err = c.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Get(context.Background(), 500)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound, "server errors must stay generic")
}

func TestSnapshotLookup(t *testing.T) {
	snap := NewSnapshot([]Product{{ID: 7, Name: "Tomatoes"}})

	p, ok := snap.Lookup("7")
	require.True(t, ok)
	assert.Equal(t, "Tomatoes", p.Name)

	_, ok = snap.Lookup("9")
	assert.False(t, ok)
	assert.Equal(t, 1, snap.Len())
}
