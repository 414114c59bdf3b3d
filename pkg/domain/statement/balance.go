package statement

import (
	"math"

	"github.com/google/uuid"
)

// Effect returns the signed contribution of s to userID's balance.
//
// Deposits and received transfers credit the owner, withdrawals debit the
// owner and a transfer debits its sender. Statements that do not reference
// userID contribute zero.
func (s *Statement) Effect(userID uuid.UUID) int64 {
	var delta int64
	if s.UserID == userID {
		switch s.Type {
		case Deposit, Transfer:
			delta += s.Amount
		case Withdraw:
			delta -= s.Amount
		}
	}
	if s.Type == Transfer && s.SenderID != nil && *s.SenderID == userID {
		delta -= s.Amount
	}
	return delta
}

// Balance aggregates the balance of userID over statements.
func Balance(userID uuid.UUID, statements []*Statement) int64 {
	var total int64
	for _, s := range statements {
		total += s.Effect(userID)
	}
	return total
}

// CanCredit reports whether amount can be added to balance without leaving
// the int64 range.
func CanCredit(balance, amount int64) bool {
	return amount <= 0 || balance <= math.MaxInt64-amount
}
