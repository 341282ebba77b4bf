package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the admin-settable order lifecycle marker. The backend owns the
// transition rules; the client only names the values.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

func (s Status) String() string { return string(s) }

// Statuses lists every valid status, in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

// ParseStatus validates a status value at the boundary, case-insensitively.
func ParseStatus(s string) (Status, error) {
	for _, known := range Statuses() {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Item is one order line. Name and price are snapshots taken when the order
// was placed; later catalogue edits must not rewrite order history.
type Item struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Order is immutable after creation except for Status.
type Order struct {
	ID              int64     `json:"id"`
	BuyerName       string    `json:"buyer_name"`
	BuyerContact    string    `json:"buyer_contact"`
	DeliveryAddress string    `json:"delivery_address"`
	DeliveryDate    string    `json:"delivery_date"`
	Notes           string    `json:"notes,omitempty"`
	UserID          string    `json:"user_id,omitempty"`
	UserEmail       string    `json:"user_email,omitempty"`
	Status          Status    `json:"status"`
	Items           []Item    `json:"items"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateOrderRequest is the payload POSTed on submission. Item snapshots are
// assembled by the checkout workflow.
type CreateOrderRequest struct {
	BuyerName       string `json:"buyer_name"`
	BuyerContact    string `json:"buyer_contact"`
	DeliveryAddress string `json:"delivery_address"`
	DeliveryDate    string `json:"delivery_date"`
	Notes           string `json:"notes,omitempty"`
	UserID          string `json:"user_id,omitempty"`
	UserEmail       string `json:"user_email,omitempty"`
	Items           []Item `json:"items"`
}

// UpdateStatusRequest payload for PUT /api/orders/{id}.
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// DeliveryFee is the flat charge added to every order's displayed total,
// independent of cart contents.
var DeliveryFee = decimal.NewFromInt(10)

// ItemsSubtotal sums price × quantity over the line items.
func ItemsSubtotal(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

// Total is the one total computation. Every place an order total is shown
// (checkout summary, tracking view, admin listing) goes through it, so the
// figures can never disagree.
func Total(items []Item) decimal.Decimal {
	return ItemsSubtotal(items).Add(DeliveryFee)
}
