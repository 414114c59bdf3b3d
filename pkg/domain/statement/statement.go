// Package statement holds the ledger's immutable record type and the rule
// that derives a user's balance from the records that reference them.
package statement

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrAmountMustBePositive is returned when a statement amount is zero or negative.
	ErrAmountMustBePositive = errors.New("amount must be positive")
	// ErrInvalidOperationType is returned for an operation type the caller may not use.
	ErrInvalidOperationType = errors.New("invalid operation type")
	// ErrInsufficientFunds is returned when the debited balance is lower than the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrBalanceOverflow is returned when a credit would push the credited balance past the int64 range.
	ErrBalanceOverflow = errors.New("balance limit exceeded")
	// ErrRecipientUserNotFound is returned when a transfer receiver does not exist.
	ErrRecipientUserNotFound = errors.New("recipient user not found")
	// ErrSelfTransfer is returned when sender and receiver are the same user.
	ErrSelfTransfer = errors.New("cannot transfer to the same user")
	// ErrStatementNotFound is returned when a statement does not exist or is not visible to the caller.
	ErrStatementNotFound = errors.New("statement not found")
	// ErrDescriptionRequired is returned when a statement has no description.
	ErrDescriptionRequired = errors.New("description is required")
)

// OperationType is the kind of financial event a statement records.
type OperationType string

const (
	Deposit  OperationType = "deposit"
	Withdraw OperationType = "withdraw"
	Transfer OperationType = "transfer"
)

// Valid reports whether t is one of the known operation types.
func (t OperationType) Valid() bool {
	switch t {
	case Deposit, Withdraw, Transfer:
		return true
	}
	return false
}

// Statement is one append-only ledger record. A transfer is a single record
// owned by the receiver (UserID) and tagged with the debited SenderID.
type Statement struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	SenderID    *uuid.UUID    `json:"sender_id,omitempty"`
	Amount      int64         `json:"amount"`
	Description string        `json:"description"`
	Type        OperationType `json:"type"`
	CreatedAt   time.Time     `json:"created_at"`
}

// New builds a validated statement. senderID must be set for transfers and
// nil otherwise.
func New(
	userID uuid.UUID,
	senderID *uuid.UUID,
	amount int64,
	description string,
	opType OperationType,
) (*Statement, error) {
	if amount <= 0 {
		return nil, ErrAmountMustBePositive
	}
	if !opType.Valid() {
		return nil, ErrInvalidOperationType
	}
	if (opType == Transfer) != (senderID != nil) {
		return nil, ErrInvalidOperationType
	}
	if opType == Transfer && *senderID == userID {
		return nil, ErrSelfTransfer
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	return &Statement{
		ID:          uuid.New(),
		UserID:      userID,
		SenderID:    senderID,
		Amount:      amount,
		Description: description,
		Type:        opType,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// IsVisibleTo reports whether userID owns the statement or was debited by it.
func (s *Statement) IsVisibleTo(userID uuid.UUID) bool {
	if s.UserID == userID {
		return true
	}
	return s.SenderID != nil && *s.SenderID == userID
}
