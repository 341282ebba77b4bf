package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/usrahul1/trin/internal/auth"
	"github.com/usrahul1/trin/internal/catalog"
	"github.com/usrahul1/trin/internal/order"
)

func (a *app) runAdmin(ctx context.Context, args []string) error {
	// Reflect the role claim for a friendlier message up front; the backend
	// enforces the real check on every request regardless.
	if tok, err := a.tokens.Token(); err == nil {
		if ident, err := auth.IdentityFromToken(tok); err == nil && !ident.IsAdmin() {
			a.log.Warn().Str("role", ident.Role).Msg("stored token has no admin role, the server will likely refuse")
		}
	}

	if len(args) < 2 {
		return errors.New("admin: products create|update|delete, or orders list|set-status")
	}
	switch args[0] {
	case "products":
		return a.runAdminProducts(ctx, args[1:])
	case "orders":
		return a.runAdminOrders(ctx, args[1:])
	default:
		return fmt.Errorf("admin: unknown subcommand %q", args[0])
	}
}

func parseProductFlags(name string, args []string) (catalog.UpdateProductRequest, []string, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var in catalog.UpdateProductRequest
	price := fs.String("price", "0", "price per kilogram")
	fs.StringVar(&in.Name, "name", "", "product name")
	fs.StringVar(&in.Description, "description", "", "description")
	fs.IntVar(&in.Stock, "stock", 0, "available stock in kilograms")
	fs.StringVar(&in.ImageURL, "image", "", "image URL")
	if err := fs.Parse(args); err != nil {
		return in, nil, err
	}
	p, err := decimal.NewFromString(*price)
	if err != nil {
		return in, nil, fmt.Errorf("invalid --price %q", *price)
	}
	in.Price = p
	return in, fs.Args(), nil
}

func (a *app) runAdminProducts(ctx context.Context, args []string) error {
	switch args[0] {
	case "create":
		in, _, err := parseProductFlags("admin products create", args[1:])
		if err != nil {
			return err
		}
		p, err := a.catalog.Create(ctx, catalog.CreateProductRequest(in))
		if err != nil {
			return err
		}
		fmt.Printf("created product %d (%s)\n", p.ID, p.Name)
		return nil
	case "update":
		if len(args) < 2 {
			return errors.New("admin products update: product id required")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[1])
		}
		in, _, err := parseProductFlags("admin products update", args[2:])
		if err != nil {
			return err
		}
		p, err := a.catalog.Update(ctx, id, in)
		if errors.Is(err, catalog.ErrNotFound) {
			return errors.New("product not found")
		}
		if err != nil {
			return err
		}
		fmt.Printf("updated product %d (%s)\n", p.ID, p.Name)
		return nil
	case "delete":
		if len(args) != 2 {
			return errors.New("admin products delete: product id required")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[1])
		}
		if err := a.catalog.Delete(ctx, id); errors.Is(err, catalog.ErrNotFound) {
			return errors.New("product not found")
		} else if err != nil {
			return err
		}
		fmt.Printf("deleted product %d\n", id)
		return nil
	default:
		return fmt.Errorf("admin products: unknown subcommand %q", args[0])
	}
}

func (a *app) runAdminOrders(ctx context.Context, args []string) error {
	switch args[0] {
	case "list":
		orders, err := a.orders.List(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tBUYER\tDATE\tSTATUS\tTOTAL")
		for _, o := range orders {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				o.ID, o.BuyerName, o.DeliveryDate, o.Status, money(order.Total(o.Items)))
		}
		return w.Flush()
	case "set-status":
		if len(args) != 3 {
			return errors.New("admin orders set-status: <order-id> <status> required")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[1])
		}
		status, err := order.ParseStatus(args[2])
		if err != nil {
			return err
		}
		if err := a.orders.UpdateStatus(ctx, id, status); errors.Is(err, order.ErrNotFound) {
			return errors.New("order not found")
		} else if err != nil {
			return err
		}
		fmt.Printf("order %d is now %s\n", id, status)
		return nil
	default:
		return fmt.Errorf("admin orders: unknown subcommand %q", args[0])
	}
}
