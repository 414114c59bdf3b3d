package app_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	infra_eventbus "github.com/amirasaad/ledger/infra/eventbus"
	infra_lock "github.com/amirasaad/ledger/infra/lock"
	"github.com/amirasaad/ledger/infra/repository/memory"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain/statement"
	svcstatement "github.com/amirasaad/ledger/pkg/service/statement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WiresServices(t *testing.T) {
	bus := infra_eventbus.NewWithMemory(slog.Default())
	closed := false
	deps := &app.Deps{
		Uow:      memory.NewUoW(),
		Locker:   infra_lock.NewMemoryLocker(time.Second),
		EventBus: bus,
		Logger:   slog.Default(),
		Cleanup:  func() error { closed = true; return nil },
	}
	cfg := &config.App{Auth: &config.Auth{Jwt: &config.Jwt{Secret: "s", Expiry: time.Hour}}}

	a := app.New(deps, cfg)
	require.NotNil(t, a.AuthService)
	require.NotNil(t, a.UserService)
	require.NotNil(t, a.StatementService)

	ctx := context.Background()
	u, err := a.UserService.CreateUser(ctx, "alice", "alice@example.com", "password")
	require.NoError(t, err)
	_, err = a.StatementService.CreateStatement(ctx, svcstatement.CreateStatementInput{
		UserID:      u.ID,
		Amount:      100,
		Description: "salary",
		Type:        statement.Deposit,
	})
	require.NoError(t, err)
	assert.Len(t, bus.Published(), 2)

	logged, err := a.AuthService.Login(ctx, "alice@example.com", "password")
	require.NoError(t, err)
	token, err := a.AuthService.GenerateToken(ctx, logged)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	require.NoError(t, a.Close())
	assert.True(t, closed)
}

func TestNew_BasicAuthWithoutJwt(t *testing.T) {
	deps := &app.Deps{Uow: memory.NewUoW(), Logger: slog.Default()}
	a := app.New(deps, &config.App{})
	require.NotNil(t, a.AuthService)
	assert.NoError(t, a.Close())
}
