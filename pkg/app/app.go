// Package app assembles the services of the ledger from their dependencies.
package app

import (
	"log/slog"

	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/amirasaad/ledger/pkg/lock"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/amirasaad/ledger/pkg/service/auth"
	"github.com/amirasaad/ledger/pkg/service/statement"
	"github.com/amirasaad/ledger/pkg/service/user"
)

// Deps contains the infrastructure the services are built from.
type Deps struct {
	Uow      repository.UnitOfWork
	Locker   lock.Locker
	EventBus eventbus.Bus
	Logger   *slog.Logger
	// Cleanup releases connections held by the infrastructure. May be nil.
	Cleanup func() error
}

type App struct {
	Deps             *Deps
	Config           *config.App
	AuthService      *auth.Service
	UserService      *user.Service
	StatementService *statement.Service
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.setupEventBus()

	if cfg.Auth != nil && cfg.Auth.Jwt != nil {
		app.AuthService = auth.NewWithJWT(deps.Uow, cfg.Auth.Jwt, deps.Logger)
	} else {
		app.AuthService = auth.NewWithBasic(deps.Uow, deps.Logger)
	}
	app.UserService = user.New(deps.Uow, deps.EventBus, deps.Logger)
	app.StatementService = statement.New(
		deps.Uow,
		deps.Locker,
		deps.EventBus,
		deps.Logger,
	)
	return app
}

// Close releases the infrastructure behind the app.
func (a *App) Close() error {
	if a.Deps.Cleanup == nil {
		return nil
	}
	return a.Deps.Cleanup()
}
