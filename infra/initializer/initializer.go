package initializer

import (
	"errors"
	"fmt"

	"github.com/amirasaad/ledger/infra"
	infra_eventbus "github.com/amirasaad/ledger/infra/eventbus"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
)

// InitializeDependencies initializes all the application dependencies.
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := SetupLogger(cfg.Log)
	deps.Logger = logger

	uow, closeDB, err := infra.NewUnitOfWork(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.Uow = uow

	locker, closeLocker, err := infra.NewLocker(cfg, logger)
	if err != nil {
		_ = closeDB()
		return nil, fmt.Errorf("failed to initialize locker: %w", err)
	}
	deps.Locker = locker

	deps.EventBus = infra_eventbus.NewWithMemory(logger)
	deps.Cleanup = func() error {
		return errors.Join(closeLocker(), closeDB())
	}
	return deps, nil
}
