// Command trin is the storefront client: browse the catalogue, edit the
// cart, place and track orders, and run the admin flows.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/usrahul1/trin/internal/auth"
	"github.com/usrahul1/trin/internal/cart"
	"github.com/usrahul1/trin/internal/catalog"
	"github.com/usrahul1/trin/internal/checkout"
	"github.com/usrahul1/trin/internal/config"
	"github.com/usrahul1/trin/internal/httpx"
	"github.com/usrahul1/trin/internal/localstore"
	"github.com/usrahul1/trin/internal/order"
)

const usage = `usage: trin <command> [args]

commands:
  products                          list the catalogue
  cart add|remove <product-id>      change quantity by one kilogram
  cart show                         show cart with subtotal
  cart clear                        abandon the cart
  checkout                          place an order from the cart
  track <order-id>                  look up an order by ID
  login --token <jwt>               store a bearer token
  logout                            forget the stored token
  whoami                            show the stored identity claims
  admin products create|update|delete ...
  admin orders list|set-status ...
`

type app struct {
	cfg     config.Config
	local   localstore.Store
	cart    *cart.Store
	catalog *catalog.Client
	orders  *order.Client
	tokens  auth.TokenSource
	log     zerolog.Logger
}

func newApp() (*app, error) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	var local localstore.Store
	if cfg.RedisAddr != "" {
		local = localstore.NewRedisStore(cfg.RedisAddr)
	} else {
		fs, err := localstore.NewFileStore(cfg.StateDir)
		if err != nil {
			return nil, err
		}
		local = fs
	}

	tokens := auth.NewStoreTokenSource(local)
	httpClient := httpx.NewClient(tokens)

	c := cart.NewStore(local, log.Logger)
	if err := c.Load(); err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		local:   local,
		cart:    c,
		catalog: catalog.NewClient(httpClient, cfg.APIBaseURL),
		orders:  order.NewClient(httpClient, cfg.APIBaseURL),
		tokens:  tokens,
		log:     log.Logger,
	}, nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	a, err := newApp()
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "products":
		err = a.runProducts(ctx)
	case "cart":
		err = a.runCart(ctx, os.Args[2:])
	case "checkout":
		err = a.runCheckout(ctx, os.Args[2:])
	case "track":
		err = a.runTrack(ctx, os.Args[2:])
	case "login":
		err = a.runLogin(os.Args[2:])
	case "logout":
		err = a.local.Delete(localstore.KeyAuthToken)
	case "whoami":
		err = a.runWhoami()
	case "admin":
		err = a.runAdmin(ctx, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func (a *app) runProducts(ctx context.Context) error {
	products, err := a.catalog.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch products, please try again later: %w", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE/KG\tSTOCK\tIN CART")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d kg\t%d kg\n",
			p.ID, p.Name, money(p.Price), p.Stock, a.cart.Quantity(p.Key()))
	}
	return w.Flush()
}

func (a *app) runCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("cart: add, remove, show or clear")
	}
	switch args[0] {
	case "add", "remove":
		if len(args) != 2 {
			return fmt.Errorf("cart %s: product id required", args[0])
		}
		if _, err := strconv.ParseInt(args[1], 10, 64); err != nil {
			return fmt.Errorf("cart %s: invalid product id %q", args[0], args[1])
		}
		if args[0] == "add" {
			return a.cart.Add(args[1])
		}
		return a.cart.Remove(args[1])
	case "show":
		return a.showCart(ctx)
	case "clear":
		return a.cart.Clear()
	default:
		return fmt.Errorf("cart: unknown subcommand %q", args[0])
	}
}

func (a *app) showCart(ctx context.Context) error {
	if a.cart.Len() == 0 {
		fmt.Println("Your cart is empty")
		return nil
	}
	snap, err := a.catalog.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch products, please try again later: %w", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tPRICE/KG\tLINE")
	for _, e := range a.cart.Snapshot() {
		name, price := "(no longer in catalogue)", decimal.Zero
		if p, ok := snap.Lookup(e.ProductKey); ok {
			name, price = p.Name, p.Price
		}
		line := price.Mul(decimal.NewFromInt(int64(e.Quantity)))
		fmt.Fprintf(w, "%s\t%s\t%d kg\t%s\t%s\n", e.ProductKey, name, e.Quantity, money(price), money(line))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	subtotal := a.cart.Subtotal(snap)
	fmt.Printf("\nSubtotal:     %s\n", money(subtotal))
	fmt.Printf("Delivery fee: %s\n", money(order.DeliveryFee))
	fmt.Printf("Total:        %s\n", money(subtotal.Add(order.DeliveryFee)))
	return nil
}

func (a *app) runCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	var form checkout.Form
	fs.StringVar(&form.BuyerName, "name", "", "buyer name")
	fs.StringVar(&form.BuyerContact, "contact", "", "contact number")
	fs.StringVar(&form.DeliveryAddress, "address", "", "delivery address")
	fs.StringVar(&form.DeliveryDate, "date", "", "preferred delivery date (YYYY-MM-DD)")
	fs.StringVar(&form.Notes, "notes", "", "additional notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Attach identity when logged in; checkout works anonymously too.
	if tok, err := a.tokens.Token(); err == nil {
		if ident, err := auth.IdentityFromToken(tok); err == nil {
			form.UserID = ident.UserID
			form.UserEmail = ident.Email
		}
	}

	snap, err := a.catalog.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch products, please try again later: %w", err)
	}

	wf := checkout.NewWorkflow(a.cart, a.orders, a.log)
	placed, err := wf.Submit(ctx, form, snap)
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		fields := make([]string, 0, len(verr.Fields))
		for f := range verr.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(os.Stderr, "%s: %s\n", f, verr.Fields[f])
		}
		return errors.New("order not submitted, fix the fields above and retry")
	}
	if err != nil {
		return fmt.Errorf("failed to place order, please try again (your cart is unchanged): %w", err)
	}

	fmt.Println("Order placed successfully!")
	fmt.Printf("Order ID: %d\n", placed.ID)
	fmt.Printf("Status:   %s\n", placed.Status)
	fmt.Printf("Total:    %s\n", money(order.Total(placed.Items)))
	return nil
}

func (a *app) runTrack(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("track: order id required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("track: invalid order id %q", args[0])
	}

	o, err := a.orders.Get(ctx, id)
	if errors.Is(err, order.ErrNotFound) {
		return errors.New("order not found, please check the ID and try again")
	}
	if err != nil {
		return fmt.Errorf("failed to fetch order details, please try again: %w", err)
	}

	fmt.Printf("Order #%d  (%s)\n", o.ID, o.Status)
	fmt.Printf("Placed:   %s\n", o.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Buyer:    %s (%s)\n", o.BuyerName, o.BuyerContact)
	fmt.Printf("Deliver:  %s on %s\n", o.DeliveryAddress, o.DeliveryDate)
	if o.Notes != "" {
		fmt.Printf("Notes:    %s\n", o.Notes)
	}
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tQTY\tPRICE/KG\tLINE")
	for _, it := range o.Items {
		line := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		fmt.Fprintf(w, "%s\t%d kg\t%s\t%s\n", it.ProductName, it.Quantity, money(it.Price), money(line))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nSubtotal:     %s\n", money(order.ItemsSubtotal(o.Items)))
	fmt.Printf("Delivery fee: %s\n", money(order.DeliveryFee))
	fmt.Printf("Total:        %s\n", money(order.Total(o.Items)))
	return nil
}

func (a *app) runLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	token := fs.String("token", "", "bearer token issued by the identity provider")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token == "" {
		return errors.New("login: --token is required")
	}
	if _, err := auth.IdentityFromToken(*token); err != nil {
		return fmt.Errorf("login: token does not parse as a JWT: %w", err)
	}
	return a.local.Set(localstore.KeyAuthToken, []byte(*token))
}

func (a *app) runWhoami() error {
	tok, err := a.tokens.Token()
	if errors.Is(err, auth.ErrNoToken) {
		fmt.Println("not logged in")
		return nil
	}
	if err != nil {
		return err
	}
	ident, err := auth.IdentityFromToken(tok)
	if err != nil {
		return fmt.Errorf("stored token does not parse: %w", err)
	}
	fmt.Printf("user:  %s\n", ident.UserID)
	fmt.Printf("email: %s\n", ident.Email)
	fmt.Printf("role:  %s\n", ident.Role)
	return nil
}
