package statement_test

import (
	"context"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/ledger/infra/eventbus"
	infralock "github.com/amirasaad/ledger/infra/lock"
	"github.com/amirasaad/ledger/infra/repository/memory"
	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/domain/statement"
	"github.com/amirasaad/ledger/pkg/domain/user"
	"github.com/amirasaad/ledger/pkg/dto"
	statementsvc "github.com/amirasaad/ledger/pkg/service/statement"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	os.Exit(m.Run())
}

type fixture struct {
	svc *statementsvc.Service
	uow *memory.UoW
	bus *infraeventbus.MemoryEventBus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	uow := memory.NewUoW()
	bus := infraeventbus.NewWithMemory(slog.Default())
	svc := statementsvc.New(uow, infralock.NewMemoryLocker(5*time.Second), bus, slog.Default())
	return &fixture{svc: svc, uow: uow, bus: bus}
}

func (f *fixture) addUser(t *testing.T, email string) uuid.UUID {
	t.Helper()
	users, err := f.uow.UserRepository()
	require.NoError(t, err)
	id := uuid.New()
	require.NoError(t, users.Create(context.Background(), &dto.UserCreate{
		ID: id, Name: email, Email: email, Password: "hash",
	}))
	return id
}

func (f *fixture) deposit(t *testing.T, userID uuid.UUID, amount int64) {
	t.Helper()
	_, err := f.svc.CreateStatement(context.Background(), statementsvc.CreateStatementInput{
		UserID: userID, Amount: amount, Description: "deposit", Type: statement.Deposit,
	})
	require.NoError(t, err)
}

func (f *fixture) balance(t *testing.T, userID uuid.UUID) *dto.Balance {
	t.Helper()
	b, err := f.svc.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	return b
}

func TestDepositDepositWithdraw(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice@example.com")

	f.deposit(t, alice, 200)
	f.deposit(t, alice, 200)
	st, err := f.svc.CreateStatement(context.Background(), statementsvc.CreateStatementInput{
		UserID: alice, Amount: 100, Description: "rent", Type: statement.Withdraw,
	})
	require.NoError(t, err)
	assert.Equal(t, statement.Withdraw, st.Type)
	assert.Nil(t, st.SenderID)

	b := f.balance(t, alice)
	assert.Equal(t, int64(300), b.Balance)
	assert.Len(t, b.Statement, 3)
	assert.Len(t, f.bus.Published(), 3)
}

func TestTransfer_MovesFunds(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice@example.com")
	bob := f.addUser(t, "bob@example.com")
	f.deposit(t, alice, 200)

	st, err := f.svc.Transfer(context.Background(), statementsvc.TransferInput{
		SenderID: alice, ReceiverID: bob, Amount: 100, Description: "lunch",
	})
	require.NoError(t, err)
	assert.Equal(t, bob, st.UserID)
	require.NotNil(t, st.SenderID)
	assert.Equal(t, alice, *st.SenderID)
	assert.Equal(t, statement.Transfer, st.Type)

	assert.Equal(t, int64(100), f.balance(t, alice).Balance)
	bobBalance := f.balance(t, bob)
	assert.Equal(t, int64(100), bobBalance.Balance)
	assert.Len(t, bobBalance.Statement, 1)

	published := f.bus.Published()
	require.Len(t, published, 2)
	created, ok := published[1].(events.StatementCreated)
	require.True(t, ok)
	assert.Equal(t, st.ID, created.StatementID)
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice@example.com")
	bob := f.addUser(t, "bob@example.com")

	_, err := f.svc.Transfer(context.Background(), statementsvc.TransferInput{
		SenderID: alice, ReceiverID: bob, Amount: 500, Description: "too much",
	})
	assert.ErrorIs(t, err, statement.ErrInsufficientFunds)
	assert.Empty(t, f.balance(t, bob).Statement)
	assert.Empty(t, f.bus.Published())
}

func TestTransfer_UnknownRecipient(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice@example.com")

	_, err := f.svc.Transfer(context.Background(), statementsvc.TransferInput{
		SenderID: alice, ReceiverID: uuid.New(), Amount: 1, Description: "x",
	})
	assert.ErrorIs(t, err, statement.ErrRecipientUserNotFound)
}

func TestTransfer_UnknownSender(t *testing.T) {
	f := newFixture(t)
	bob := f.addUser(t, "bob@example.com")

	_, err := f.svc.Transfer(context.Background(), statementsvc.TransferInput{
		SenderID: uuid.New(), ReceiverID: bob, Amount: 1, Description: "x",
	})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestDeposit_BalanceOverflow(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice@example.com")
	f.deposit(t, alice, math.MaxInt64)

	_, err := f.svc.CreateStatement(context.Background(), statementsvc.CreateStatementInput{
		UserID: alice, Amount: 10, Description: "one more", Type: statement.Deposit,
	})
	assert.ErrorIs(t, err, statement.ErrBalanceOverflow)

	b := f.balance(t, alice)
	assert.Equal(t, int64(math.MaxInt64), b.Balance)
	assert.Len(t, b.Statement, 1)

	_, err = f.svc.CreateStatement(context.Background(), statementsvc.CreateStatementInput{
		UserID: alice, Amount: 1, Description: "atm", Type: statement.Withdraw,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64-1), f.balance(t, alice).Balance)
}

func TestTransfer_ReceiverBalanceOverflow(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice@example.com")
	bob := f.addUser(t, "bob@example.com")
	f.deposit(t, alice, 10)
	f.deposit(t, bob, math.MaxInt64)

	_, err := f.svc.Transfer(context.Background(), statementsvc.TransferInput{
		SenderID: alice, ReceiverID: bob, Amount: 1, Description: "gift",
	})
	assert.ErrorIs(t, err, statement.ErrBalanceOverflow)
	assert.Equal(t, int64(10), f.balance(t, alice).Balance)
	assert.Equal(t, int64(math.MaxInt64), f.balance(t, bob).Balance)

	_, err = f.svc.Transfer(context.Background(), statementsvc.TransferInput{
		SenderID: bob, ReceiverID: alice, Amount: 5, Description: "refund",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), f.balance(t, alice).Balance)
}

func TestTransfer_Self(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice@example.com")
	f.deposit(t, alice, 100)

	_, err := f.svc.Transfer(context.Background(), statementsvc.TransferInput{
		SenderID: alice, ReceiverID: alice, Amount: 10, Description: "loop",
	})
	assert.ErrorIs(t, err, statement.ErrSelfTransfer)
	assert.Equal(t, int64(100), f.balance(t, alice).Balance)
}

func TestCreateStatement_Validation(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice@example.com")
	ctx := context.Background()

	tests := []struct {
		name     string
		in       statementsvc.CreateStatementInput
		expected error
	}{
		{
			name:     "transfer type not allowed",
			in:       statementsvc.CreateStatementInput{UserID: alice, Amount: 10, Description: "x", Type: statement.Transfer},
			expected: statement.ErrInvalidOperationType,
		},
		{
			name:     "unknown type",
			in:       statementsvc.CreateStatementInput{UserID: alice, Amount: 10, Description: "x", Type: "refund"},
			expected: statement.ErrInvalidOperationType,
		},
		{
			name:     "zero amount",
			in:       statementsvc.CreateStatementInput{UserID: alice, Amount: 0, Description: "x", Type: statement.Deposit},
			expected: statement.ErrAmountMustBePositive,
		},
		{
			name:     "unknown user",
			in:       statementsvc.CreateStatementInput{UserID: uuid.New(), Amount: 10, Description: "x", Type: statement.Deposit},
			expected: user.ErrUserNotFound,
		},
		{
			name:     "withdraw over balance",
			in:       statementsvc.CreateStatementInput{UserID: alice, Amount: 1, Description: "x", Type: statement.Withdraw},
			expected: statement.ErrInsufficientFunds,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := f.svc.CreateStatement(ctx, tt.in)
			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, st)
		})
	}
	assert.Empty(t, f.balance(t, alice).Statement, "failed operations persist nothing")
}

func TestGetBalance_UnknownUser(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.GetBalance(context.Background(), uuid.New())
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.Nil(t, b)
}

func TestDepositWithdrawSequence(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice@example.com")
	ctx := context.Background()

	ops := []struct {
		opType statement.OperationType
		amount int64
	}{
		{statement.Deposit, 50}, {statement.Withdraw, 80}, {statement.Withdraw, 20},
		{statement.Deposit, 30}, {statement.Withdraw, 60}, {statement.Withdraw, 60},
	}
	var expected int64
	successes := 0
	for _, op := range ops {
		_, err := f.svc.CreateStatement(ctx, statementsvc.CreateStatementInput{
			UserID: alice, Amount: op.amount, Description: "op", Type: op.opType,
		})
		if err != nil {
			require.ErrorIs(t, err, statement.ErrInsufficientFunds)
			continue
		}
		successes++
		if op.opType == statement.Deposit {
			expected += op.amount
		} else {
			expected -= op.amount
		}
	}

	b := f.balance(t, alice)
	assert.Equal(t, expected, b.Balance)
	assert.Len(t, b.Statement, successes)
	assert.GreaterOrEqual(t, b.Balance, int64(0))
}

func TestGetStatement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice@example.com")
	bob := f.addUser(t, "bob@example.com")
	carol := f.addUser(t, "carol@example.com")
	f.deposit(t, alice, 100)

	st, err := f.svc.Transfer(ctx, statementsvc.TransferInput{
		SenderID: alice, ReceiverID: bob, Amount: 40, Description: "gift",
	})
	require.NoError(t, err)

	for _, viewer := range []uuid.UUID{alice, bob} {
		got, err := f.svc.GetStatement(ctx, viewer, st.ID)
		require.NoError(t, err)
		assert.Equal(t, st.ID, got.ID)
	}

	_, err = f.svc.GetStatement(ctx, carol, st.ID)
	assert.ErrorIs(t, err, statement.ErrStatementNotFound)

	_, err = f.svc.GetStatement(ctx, alice, uuid.New())
	assert.ErrorIs(t, err, statement.ErrStatementNotFound)

	_, err = f.svc.GetStatement(ctx, uuid.New(), st.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
