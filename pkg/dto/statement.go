package dto

import (
	"time"

	"github.com/amirasaad/ledger/pkg/domain/statement"
	"github.com/google/uuid"
)

// StatementCreate represents the data needed to append a statement.
type StatementCreate struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SenderID    *uuid.UUID
	Amount      int64
	Description string
	Type        statement.OperationType
	CreatedAt   time.Time
}

// StatementRead represents a persisted statement.
type StatementRead struct {
	ID          uuid.UUID               `json:"id"`
	UserID      uuid.UUID               `json:"user_id"`
	SenderID    *uuid.UUID              `json:"sender_id,omitempty"`
	Amount      int64                   `json:"amount"`
	Description string                  `json:"description"`
	Type        statement.OperationType `json:"type"`
	CreatedAt   time.Time               `json:"created_at"`
}

// ToDomain converts the read model into the domain record.
func (s *StatementRead) ToDomain() *statement.Statement {
	return &statement.Statement{
		ID:          s.ID,
		UserID:      s.UserID,
		SenderID:    s.SenderID,
		Amount:      s.Amount,
		Description: s.Description,
		Type:        s.Type,
		CreatedAt:   s.CreatedAt,
	}
}

// Balance is a user's derived balance together with the statements they own.
type Balance struct {
	Balance   int64            `json:"balance"`
	Statement []*StatementRead `json:"statement"`
}
