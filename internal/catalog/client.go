package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var ErrNotFound = errors.New("product not found")

// Client consumes the /api/products part of the backend contract.
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

// List fetches the full catalogue.
func (c *Client) List(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/api/products"), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list products: %s", res.Status)
	}
	var out []Product
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("list products: decode: %w", err)
	}
	return out, nil
}

// Get fetches one product. Absence is ErrNotFound, anything else a generic
// transport/server error.
func (c *Client) Get(ctx context.Context, id int64) (*Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/api/products/%d", id), nil)
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
		return nil, fmt.Errorf("get product: %s", res.Status)
	}
	var p Product
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("get product: decode: %w", err)
	}
	return &p, nil
}

// Snapshot fetches the catalogue and indexes it for cart resolution.
func (c *Client) Snapshot(ctx context.Context) (Snapshot, error) {
	products, err := c.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return NewSnapshot(products), nil
}

// Create adds a product. Admin only; the server enforces the role.
func (c *Client) Create(ctx context.Context, in CreateProductRequest) (*Product, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/products"), bytes.NewReader(body))
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
		return nil, fmt.Errorf("create product: %s", res.Status)
	}
	var p Product
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("create product: decode: %w", err)
	}
	return &p, nil
}

// Update replaces a product's fields. Admin only.
func (c *Client) Update(ctx context.Context, id int64, in UpdateProductRequest) (*Product, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.url("/api/products/%d", id), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
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
		return nil, fmt.Errorf("update product: %s", res.Status)
	}
	var p Product
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("update product: decode: %w", err)
	}
	return &p, nil
}

// Delete removes a product. Admin only.
func (c *Client) Delete(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.url("/api/products/%d", id), nil)
	if err != nil {
		return err
	}
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
		return fmt.Errorf("delete product: %s", res.Status)
	}
}
