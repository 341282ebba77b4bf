package httpx

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/usrahul1/trin/internal/auth"
)

// Transport decorates every outgoing API request with a bearer token (when
// one is stored) and an X-Request-ID. A missing token is not an error: the
// request goes out unauthenticated and the server decides whether to reject.
type Transport struct {
	Base   http.RoundTripper
	Tokens auth.TokenSource
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())

	if t.Tokens != nil {
		tok, err := t.Tokens.Token()
		switch {
		case err == nil:
			out.Header.Set("Authorization", "Bearer "+tok)
		case errors.Is(err, auth.ErrNoToken):
			// unauthenticated request
		default:
			return nil, err
		}
	}
	if out.Header.Get("X-Request-ID") == "" {
		out.Header.Set("X-Request-ID", uuid.NewString())
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(out)
}

// NewClient builds the HTTP client every API client in this module shares.
func NewClient(tokens auth.TokenSource) *http.Client {
	return &http.Client{
		Timeout:   15 * time.Second,
		Transport: &Transport{Tokens: tokens},
	}
}
