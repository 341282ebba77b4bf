package order

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var ErrNotFound = errors.New("order not found")

// Client consumes the /api/orders part of the backend contract.
type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{http: httpClient, baseURL: baseURL}
}

func (c *Client) url(format string, args ...any) string {
	return c.baseURL + fmt.Sprintf(format, args...)
}

// Create submits a new order and returns it with the backend-assigned ID.
func (c *Client) Create(ctx context.Context, in CreateOrderRequest) (*Order, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/orders"), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated && res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("create order: %s", res.Status)
	}
	var o Order
	if err := json.NewDecoder(res.Body).Decode(&o); err != nil {
		return nil, fmt.Errorf("create order: decode: %w", err)
	}
	return &o, nil
}

// Get fetches one order. This is the tracking lookup: absence comes back as
// ErrNotFound so callers can show "check the ID" instead of a generic failure.
func (c *Client) Get(ctx context.Context, id int64) (*Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/api/orders/%d", id), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("get order: %s", res.Status)
	}
	var o Order
	if err := json.NewDecoder(res.Body).Decode(&o); err != nil {
		return nil, fmt.Errorf("get order: decode: %w", err)
	}
	return &o, nil
}

// List fetches all orders. Admin only.
func (c *Client) List(ctx context.Context) ([]Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/api/orders"), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list orders: %s", res.Status)
	}
	var out []Order
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("list orders: decode: %w", err)
	}
	return out, nil
}

// UpdateStatus sets an order's status. Admin only. Transition legality is
// the backend's call; nothing is blocked client-side.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status Status) error {
	body, err := json.Marshal(UpdateStatusRequest{Status: status})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.url("/api/orders/%d", id), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	switch res.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("update order status: %s", res.Status)
	}
}
