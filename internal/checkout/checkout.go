// Package checkout drives order submission: validate buyer details, price the
// cart against a catalogue snapshot, post the order, and clear the cart only
// once the backend has accepted it.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/usrahul1/trin/internal/cart"
	"github.com/usrahul1/trin/internal/catalog"
	"github.com/usrahul1/trin/internal/order"
)

// State of the submission workflow.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Name used when a cart entry cannot be resolved against the catalogue
// snapshot at submission time.
const placeholderName = "Unknown Product"

// Form carries the buyer-supplied delivery details.
type Form struct {
	BuyerName       string
	BuyerContact    string
	DeliveryAddress string
	DeliveryDate    string
	Notes           string

	// Optional identity, attached when the buyer is logged in.
	UserID    string
	UserEmail string
}

// FieldErrors maps a form field (or "cart") to a human-readable message.
type FieldErrors map[string]string

// ValidationError blocks submission while keeping the workflow editable.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return fmt.Sprintf("invalid submission: %s", strings.Join(keys, ", "))
}

// Submitter is the slice of the orders API the workflow needs.
type Submitter interface {
	Create(ctx context.Context, in order.CreateOrderRequest) (*order.Order, error)
}

// Workflow is a single order submission. States: Editing → Submitting →
// Succeeded | Failed; a failed submission returns to Editing on the next
// Submit call, with the cart intact.
type Workflow struct {
	cart   *cart.Store
	orders Submitter
	log    zerolog.Logger

	state   State
	orderID int64
}

func NewWorkflow(c *cart.Store, orders Submitter, log zerolog.Logger) *Workflow {
	return &Workflow{cart: c, orders: orders, log: log, state: StateEditing}
}

func (w *Workflow) State() State { return w.state }

// OrderID is the backend-assigned identifier, valid once state is Succeeded.
func (w *Workflow) OrderID() int64 { return w.orderID }

// Validate checks the buyer fields and the cart. It performs no network
// calls and leaves the workflow state untouched.
func (w *Workflow) Validate(form Form) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(form.BuyerName) == "" {
		errs["buyer_name"] = "Name is required"
	}
	if strings.TrimSpace(form.BuyerContact) == "" {
		errs["buyer_contact"] = "Contact information is required"
	}
	if strings.TrimSpace(form.DeliveryAddress) == "" {
		errs["delivery_address"] = "Delivery address is required"
	}
	if strings.TrimSpace(form.DeliveryDate) == "" {
		errs["delivery_date"] = "Delivery date is required"
	}
	if w.cart.Len() == 0 {
		errs["cart"] = "Your cart is empty"
	}
	return errs
}

// BuildItems resolves the cart against the catalogue snapshot, taking the
// name/price snapshots the order will carry forever. A cart entry whose
// product has vanished from the catalogue gets the placeholder name and a
// zero price, logged as a data-consistency warning.
func (w *Workflow) BuildItems(snap catalog.Snapshot) []order.Item {
	entries := w.cart.Snapshot()
	items := make([]order.Item, 0, len(entries))
	for _, e := range entries {
		id, err := strconv.ParseInt(e.ProductKey, 10, 64)
		if err != nil {
			w.log.Warn().Str("product", e.ProductKey).Msg("checkout: non-numeric product key in cart")
			id = 0
		}
		it := order.Item{ProductID: id, Quantity: e.Quantity}
		if p, ok := snap.Lookup(e.ProductKey); ok {
			it.ProductName = p.Name
			it.Price = p.Price
		} else {
			w.log.Warn().Str("product", e.ProductKey).
				Msg("checkout: cart entry missing from catalogue snapshot")
			it.ProductName = placeholderName
			it.Price = decimal.Zero
		}
		items = append(items, it)
	}
	return items
}

// Subtotal and Total price the current cart the same way the submitted order
// will be priced, so the summary shown before submission matches the order.
func (w *Workflow) Subtotal(snap catalog.Snapshot) decimal.Decimal {
	return w.cart.Subtotal(snap)
}

func (w *Workflow) Total(snap catalog.Snapshot) decimal.Decimal {
	return w.cart.Subtotal(snap).Add(order.DeliveryFee)
}

// Submit runs the full workflow. Validation failures surface as
// *ValidationError before any network call. On backend success the cart is
// cleared (memory and persisted store) and the assigned order ID recorded;
// on backend failure the cart is left untouched so the buyer can retry.
func (w *Workflow) Submit(ctx context.Context, form Form, snap catalog.Snapshot) (*order.Order, error) {
	if w.state == StateSubmitting {
		return nil, errors.New("checkout: submission already in flight")
	}
	w.state = StateEditing

	if errs := w.Validate(form); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	w.state = StateSubmitting
	req := order.CreateOrderRequest{
		BuyerName:       form.BuyerName,
		BuyerContact:    form.BuyerContact,
		DeliveryAddress: form.DeliveryAddress,
		DeliveryDate:    form.DeliveryDate,
		Notes:           form.Notes,
		UserID:          form.UserID,
		UserEmail:       form.UserEmail,
		Items:           w.BuildItems(snap),
	}

	placed, err := w.orders.Create(ctx, req)
	if err != nil {
		w.state = StateFailed
		w.log.Error().Err(err).Msg("checkout: order submission failed")
		return nil, err
	}

	w.state = StateSucceeded
	w.orderID = placed.ID
	if err := w.cart.Clear(); err != nil {
		// The order is placed; a failed cart clear must not look like a
		// failed submission.
		w.log.Warn().Err(err).Int64("order_id", placed.ID).
			Msg("checkout: order placed but cart clear failed")
	}
	w.log.Info().Int64("order_id", placed.ID).Msg("checkout: order placed")
	return placed, nil
}
