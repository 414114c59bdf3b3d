package statement_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/amirasaad/ledger/pkg/domain/statement"
	statementsvc "github.com/amirasaad/ledger/pkg/service/statement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice@example.com")
	f.deposit(t, alice, 100)

	var succeeded, rejected int32
	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			_, err := f.svc.CreateStatement(context.Background(), statementsvc.CreateStatementInput{
				UserID: alice, Amount: 10, Description: "atm", Type: statement.Withdraw,
			})
			switch {
			case err == nil:
				atomic.AddInt32(&succeeded, 1)
			case errors.Is(err, statement.ErrInsufficientFunds):
				atomic.AddInt32(&rejected, 1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(10), succeeded)
	assert.Equal(t, int32(40), rejected)
	assert.Equal(t, int64(0), f.balance(t, alice).Balance)
}

func TestConcurrentTransfersConserveFunds(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice@example.com")
	bob := f.addUser(t, "bob@example.com")
	f.deposit(t, alice, 100)
	f.deposit(t, bob, 100)

	var g errgroup.Group
	for i := 0; i < 40; i++ {
		sender, receiver := alice, bob
		if i%2 == 1 {
			sender, receiver = bob, alice
		}
		g.Go(func() error {
			_, err := f.svc.Transfer(context.Background(), statementsvc.TransferInput{
				SenderID: sender, ReceiverID: receiver, Amount: 15, Description: "ping",
			})
			if err != nil && !errors.Is(err, statement.ErrInsufficientFunds) {
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	a := f.balance(t, alice).Balance
	b := f.balance(t, bob).Balance
	assert.GreaterOrEqual(t, a, int64(0))
	assert.GreaterOrEqual(t, b, int64(0))
	assert.Equal(t, int64(200), a+b)
}
