// Package events defines the domain events published after a change commits.
package events

import (
	"time"

	"github.com/amirasaad/ledger/pkg/domain/statement"
	"github.com/google/uuid"
)

// Event is implemented by every domain event.
type Event interface {
	Type() string
}

// StatementCreated is published after a deposit, withdrawal or transfer is
// committed to the ledger.
type StatementCreated struct {
	ID          uuid.UUID
	StatementID uuid.UUID
	UserID      uuid.UUID
	SenderID    *uuid.UUID
	Amount      int64
	OpType      statement.OperationType
	Timestamp   time.Time
}

func (e StatementCreated) Type() string { return EventTypeStatementCreated.String() }

// UserRegistered is published after a user is created.
type UserRegistered struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Email     string
	Timestamp time.Time
}

func (e UserRegistered) Type() string { return EventTypeUserRegistered.String() }

// NewStatementCreated builds a StatementCreated event for s.
func NewStatementCreated(s *statement.Statement) StatementCreated {
	return StatementCreated{
		ID:          uuid.New(),
		StatementID: s.ID,
		UserID:      s.UserID,
		SenderID:    s.SenderID,
		Amount:      s.Amount,
		OpType:      s.Type,
		Timestamp:   time.Now().UTC(),
	}
}
