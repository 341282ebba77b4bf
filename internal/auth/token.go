// Package auth reads the bearer token the identity provider left in the
// local store and reflects its claims. The client never decides authorization
// itself: the backend re-checks the token on every admin route, so parsing
// here is only used to shape the UI (e.g. whether to offer admin commands).
package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/usrahul1/trin/internal/localstore"
)

// RoleAdmin is the role claim value the identity provider issues for
// administrators. Role equality is the single admin predicate everywhere.
const RoleAdmin = "admin"

var ErrNoToken = errors.New("auth: no token in local store")

// TokenSource yields the current bearer token, if any.
type TokenSource interface {
	Token() (string, error)
}

// StoreTokenSource reads the token from the local store on every call, so a
// token written by another process (or deleted on logout) is picked up
// without restarting.
type StoreTokenSource struct {
	store localstore.Store
}

func NewStoreTokenSource(store localstore.Store) *StoreTokenSource {
	return &StoreTokenSource{store: store}
}

func (s *StoreTokenSource) Token() (string, error) {
	b, ok, err := s.store.Get(localstore.KeyAuthToken)
	if err != nil {
		return "", err
	}
	if !ok || len(b) == 0 {
		return "", ErrNoToken
	}
	return string(b), nil
}

// StaticTokenSource returns a fixed token. Handy for tests and one-shot
// admin invocations with --token.
type StaticTokenSource string

func (s StaticTokenSource) Token() (string, error) {
	if s == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}

// Claims is the subset of the identity provider's JWT payload the client
// cares about.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the client-side view of the logged-in user.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}

// IdentityFromToken extracts the identity claims without verifying the
// signature. Verification belongs to the backend; a forged role claim buys
// nothing here because every admin request is re-authenticated server-side.
func IdentityFromToken(token string) (Identity, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Identity{}, err
	}
	return Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
