// Command seed loads demo users and opening balances. Usage:
//
//	seed [-file fixtures.yaml]
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/amirasaad/ledger/infra/initializer"
	"github.com/amirasaad/ledger/internal/fixtures/seed"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	log "github.com/charmbracelet/log"
)

func main() {
	file := flag.String("file", "", "seed YAML file (defaults to the embedded fixture)")
	flag.Parse()
	if err := run(context.Background(), *file); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, file string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	a := app.New(deps, cfg)
	defer a.Close() //nolint:errcheck

	fx, err := seed.Load(file)
	if err != nil {
		return err
	}
	res, err := seed.Apply(ctx, a, fx, deps.Logger)
	if err != nil {
		return err
	}
	deps.Logger.Info("Seed complete",
		"users_created", res.UsersCreated,
		"users_skipped", res.UsersSkipped,
		"statements", res.Statements,
	)
	return nil
}

