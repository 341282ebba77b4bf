package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usrahul1/trin/internal/localstore"
)

func signed(t *testing.T, claims Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestIdentityFromToken(t *testing.T) {
	tok := signed(t, Claims{
		Email: "asha@example.com",
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	ident, err := IdentityFromToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", ident.UserID)
	assert.Equal(t, "asha@example.com", ident.Email)
	assert.True(t, ident.IsAdmin())
}

func TestIsAdminIsRoleEqualityOnly(t *testing.T) {
	// the admin predicate is the role claim, never an email comparison
	ident, err := IdentityFromToken(signed(t, Claims{
		Email:            "admin@example.com",
		Role:             "customer",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u-2"},
	}))
	require.NoError(t, err)
	assert.False(t, ident.IsAdmin())
}

func TestIdentityFromGarbageToken(t *testing.T) {
	_, err := IdentityFromToken("not-a-jwt")
	assert.Error(t, err)
}

func TestStoreTokenSource(t *testing.T) {
	local, err := localstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	src := NewStoreTokenSource(local)

	_, err = src.Token()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, local.Set(localstore.KeyAuthToken, []byte("tok-abc")))
	tok, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", tok)

	// token written by another process is picked up on the next call
	require.NoError(t, local.Delete(localstore.KeyAuthToken))
	_, err = src.Token()
	assert.ErrorIs(t, err, ErrNoToken)
}
