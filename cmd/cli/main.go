// Command cli operates the ledger directly against the configured database.
//
//	cli register --name Alice --email alice@example.com
//	cli deposit --email alice@example.com --amount 500 --description salary
//	cli transfer --email alice@example.com --to bob@example.com --amount 100 --description rent
//	cli balance --email alice@example.com
//
// Passwords are prompted for without echo, or read from stdin when it is not
// a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/amirasaad/ledger/infra/initializer"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		color.Red("Failed to initialize: %v", err)
		os.Exit(1)
	}
	a := app.New(deps, cfg)

	cli := &CLI{App: a, In: os.Stdin, Out: os.Stdout, Password: terminalPassword}
	err = cli.Run(ctx, os.Args[1:])
	_ = a.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}
