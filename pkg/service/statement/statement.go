// Package statement provides the ledger operations: balance queries,
// deposits, withdrawals and peer-to-peer transfers.
//
// Every mutating operation holds the lock.Locker keys of the users it
// touches and runs its balance checks and its single write inside one
// UnitOfWork transaction with those users' rows locked. Keys and rows are
// always taken in ascending user ID order.
package statement

import (
	"bytes"
	"context"
	"log/slog"
	"slices"

	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/domain/statement"
	"github.com/amirasaad/ledger/pkg/domain/user"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/amirasaad/ledger/pkg/lock"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
)

// CreateStatementInput is a deposit or withdrawal request.
type CreateStatementInput struct {
	UserID      uuid.UUID
	Amount      int64
	Description string
	Type        statement.OperationType
}

// TransferInput is a transfer request from SenderID to ReceiverID.
type TransferInput struct {
	SenderID    uuid.UUID
	ReceiverID  uuid.UUID
	Amount      int64
	Description string
}

// Service provides the statement ledger operations.
type Service struct {
	uow    repository.UnitOfWork
	locker lock.Locker
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a Service. A nil locker disables per-user serialization and a
// nil bus disables event publishing.
func New(
	uow repository.UnitOfWork,
	locker lock.Locker,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	if locker == nil {
		locker = lock.Noop{}
	}
	return &Service{
		uow:    uow,
		locker: locker,
		bus:    bus,
		logger: logger,
	}
}

// GetBalance returns userID's balance and owned statement history.
func (s *Service) GetBalance(
	ctx context.Context,
	userID uuid.UUID,
) (b *dto.Balance, err error) {
	log := s.logger.With("context", "GetBalance", "userID", userID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := users.Get(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return user.ErrUserNotFound
		}
		stmts, err := uow.StatementRepository()
		if err != nil {
			return err
		}
		b, err = stmts.GetUserBalance(ctx, userID)
		return err
	})
	if err != nil {
		log.Error("GetBalance failed", "error", err)
		return nil, err
	}
	log.Debug("GetBalance successful", "balance", b.Balance)
	return
}

// CreateStatement records a deposit or a withdrawal. Withdrawals fail with
// statement.ErrInsufficientFunds when the amount exceeds the balance and
// deposits fail with statement.ErrBalanceOverflow when the balance would
// leave the int64 range.
func (s *Service) CreateStatement(
	ctx context.Context,
	in CreateStatementInput,
) (st *dto.StatementRead, err error) {
	log := s.logger.With("context", "CreateStatement", "userID", in.UserID, "type", in.Type)
	if in.Type != statement.Deposit && in.Type != statement.Withdraw {
		return nil, statement.ErrInvalidOperationType
	}
	record, err := statement.New(in.UserID, nil, in.Amount, in.Description, in.Type)
	if err != nil {
		log.Error("Invalid statement", "error", err)
		return nil, err
	}

	unlock, err := s.lockUsers(ctx, in.UserID)
	if err != nil {
		log.Error("Failed to acquire user lock", "error", err)
		return nil, err
	}
	defer unlock()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := lockRows(ctx, uow, in.UserID)
		if err != nil {
			return err
		}
		if users[in.UserID] == nil {
			return user.ErrUserNotFound
		}
		stmts, err := uow.StatementRepository()
		if err != nil {
			return err
		}
		if in.Type == statement.Withdraw {
			err = ensureFunds(ctx, stmts, in.UserID, in.Amount)
		} else {
			err = ensureHeadroom(ctx, stmts, in.UserID, in.Amount)
		}
		if err != nil {
			return err
		}
		st, err = stmts.Create(ctx, toCreate(record))
		return err
	})
	if err != nil {
		log.Error("CreateStatement failed", "error", err)
		return nil, err
	}
	log.Info("Statement created", "statementID", st.ID, "amount", st.Amount)
	s.publish(ctx, st)
	return
}

// Transfer moves funds from SenderID to ReceiverID as a single statement
// owned by the receiver. Checks run in order: receiver exists, sender
// exists, not a self transfer, sender has funds, receiver has headroom.
func (s *Service) Transfer(
	ctx context.Context,
	in TransferInput,
) (st *dto.StatementRead, err error) {
	log := s.logger.With("context", "Transfer", "senderID", in.SenderID, "receiverID", in.ReceiverID)
	if in.Amount <= 0 {
		return nil, statement.ErrAmountMustBePositive
	}

	unlock, err := s.lockUsers(ctx, in.SenderID, in.ReceiverID)
	if err != nil {
		log.Error("Failed to acquire user lock", "error", err)
		return nil, err
	}
	defer unlock()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := lockRows(ctx, uow, in.SenderID, in.ReceiverID)
		if err != nil {
			return err
		}
		if users[in.ReceiverID] == nil {
			return statement.ErrRecipientUserNotFound
		}
		if users[in.SenderID] == nil {
			return user.ErrUserNotFound
		}
		sender := in.SenderID
		record, err := statement.New(in.ReceiverID, &sender, in.Amount, in.Description, statement.Transfer)
		if err != nil {
			return err
		}
		stmts, err := uow.StatementRepository()
		if err != nil {
			return err
		}
		if err := ensureFunds(ctx, stmts, in.SenderID, in.Amount); err != nil {
			return err
		}
		if err := ensureHeadroom(ctx, stmts, in.ReceiverID, in.Amount); err != nil {
			return err
		}
		st, err = stmts.Create(ctx, toCreate(record))
		return err
	})
	if err != nil {
		log.Error("Transfer failed", "error", err)
		return nil, err
	}
	log.Info("Transfer completed", "statementID", st.ID, "amount", st.Amount)
	s.publish(ctx, st)
	return
}

// GetStatement returns a statement the caller owns or sent.
func (s *Service) GetStatement(
	ctx context.Context,
	userID, statementID uuid.UUID,
) (st *dto.StatementRead, err error) {
	log := s.logger.With("context", "GetStatement", "userID", userID, "statementID", statementID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := resolveUser(ctx, uow, userID, user.ErrUserNotFound); err != nil {
			return err
		}
		stmts, err := uow.StatementRepository()
		if err != nil {
			return err
		}
		st, err = stmts.Get(ctx, statementID)
		if err != nil {
			return err
		}
		if st == nil || !st.ToDomain().IsVisibleTo(userID) {
			return statement.ErrStatementNotFound
		}
		return nil
	})
	if err != nil {
		log.Error("GetStatement failed", "error", err)
		return nil, err
	}
	return
}

// lockUsers takes the locker keys of ids in ascending order and returns a
// func releasing them in reverse.
func (s *Service) lockUsers(ctx context.Context, ids ...uuid.UUID) (func(), error) {
	held := make([]func(), 0, len(ids))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i]()
		}
	}
	for _, id := range sortedIDs(ids) {
		unlock, err := s.locker.Lock(ctx, lock.UserKey(id))
		if err != nil {
			release()
			return nil, err
		}
		held = append(held, unlock)
	}
	return release, nil
}

// lockRows reads ids with GetForUpdate in ascending order. Missing users map
// to nil; their rows stay locked until the transaction ends.
func lockRows(
	ctx context.Context,
	uow repository.UnitOfWork,
	ids ...uuid.UUID,
) (map[uuid.UUID]*dto.UserRead, error) {
	users, err := uow.UserRepository()
	if err != nil {
		return nil, err
	}
	found := make(map[uuid.UUID]*dto.UserRead, len(ids))
	for _, id := range sortedIDs(ids) {
		u, err := users.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		found[id] = u
	}
	return found, nil
}

func sortedIDs(ids []uuid.UUID) []uuid.UUID {
	out := slices.Clone(ids)
	slices.SortFunc(out, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	return slices.Compact(out)
}

// resolveUser fails with notFound when id is not in the directory.
func resolveUser(
	ctx context.Context,
	uow repository.UnitOfWork,
	id uuid.UUID,
	notFound error,
) error {
	users, err := uow.UserRepository()
	if err != nil {
		return err
	}
	u, err := users.Get(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return notFound
	}
	return nil
}

type balanceReader interface {
	GetUserBalance(ctx context.Context, userID uuid.UUID) (*dto.Balance, error)
}

func ensureFunds(ctx context.Context, stmts balanceReader, userID uuid.UUID, amount int64) error {
	b, err := stmts.GetUserBalance(ctx, userID)
	if err != nil {
		return err
	}
	if amount > b.Balance {
		return statement.ErrInsufficientFunds
	}
	return nil
}

func ensureHeadroom(ctx context.Context, stmts balanceReader, userID uuid.UUID, amount int64) error {
	b, err := stmts.GetUserBalance(ctx, userID)
	if err != nil {
		return err
	}
	if !statement.CanCredit(b.Balance, amount) {
		return statement.ErrBalanceOverflow
	}
	return nil
}

func toCreate(s *statement.Statement) dto.StatementCreate {
	return dto.StatementCreate{
		ID:          s.ID,
		UserID:      s.UserID,
		SenderID:    s.SenderID,
		Amount:      s.Amount,
		Description: s.Description,
		Type:        s.Type,
		CreatedAt:   s.CreatedAt,
	}
}

// publish emits StatementCreated after commit. Failures are logged only.
func (s *Service) publish(ctx context.Context, st *dto.StatementRead) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, events.NewStatementCreated(st.ToDomain())); err != nil {
		s.logger.Error("Failed to publish statement event", "statementID", st.ID, "error", err)
	}
}
