package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usrahul1/trin/internal/auth"
)

func TestTransportAttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRID = r.Header.Get("X-Request-ID")
	}))
	defer srv.Close()

	client := NewClient(auth.StaticTokenSource("tok-123"))
	res, err := client.Get(srv.URL)
	require.NoError(t, err)
	res.Body.Close()

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRID)
}

func TestTransportWithoutTokenSendsUnauthenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	// empty static source reports ErrNoToken; the request still goes out
	client := NewClient(auth.StaticTokenSource(""))
	res, err := client.Get(srv.URL)
	require.NoError(t, err)
	res.Body.Close()

	assert.Empty(t, gotAuth)
}
