// Command trin-devserver runs the in-memory backend double for local
// development. State lives only for the life of the process.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/usrahul1/trin/internal/auth"
	"github.com/usrahul1/trin/internal/catalog"
	"github.com/usrahul1/trin/internal/config"
	"github.com/usrahul1/trin/internal/devserver"
)

func seedProducts() []catalog.Product {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return []catalog.Product{
		{Name: "Tomatoes", Description: "Vine ripened", Price: price("4.50"), Stock: 40},
		{Name: "Potatoes", Description: "Yukon gold", Price: price("2.25"), Stock: 120},
		{Name: "Mangoes", Description: "Alphonso", Price: price("10.00"), Stock: 25},
		{Name: "Spinach", Description: "Baby leaf", Price: price("3.80"), Stock: 18},
	}
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "trin-devserver").Logger()

	seed := flag.Bool("seed", true, "seed a few grocery products on boot")
	mintAdmin := flag.Bool("mint-admin-token", false, "print an admin bearer token and continue")
	flag.Parse()

	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	srv := devserver.New([]byte(cfg.DevServerSecret))
	if *seed {
		srv.Seed(seedProducts())
	}
	if *mintAdmin {
		tok, err := devserver.MintToken([]byte(cfg.DevServerSecret), "dev-admin", "admin@localhost", auth.RoleAdmin)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to mint admin token")
		}
		log.Info().Str("token", tok).Msg("admin token")
	}

	log.Info().Str("addr", cfg.DevServerAddr).Msg("devserver listening")
	if err := srv.Router().Run(cfg.DevServerAddr); err != nil {
		log.Fatal().Err(err).Msg("devserver exited")
	}
}
