package statement

import (
	"context"

	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/google/uuid"
)

// Repository is the append-only statement ledger.
type Repository interface {
	// Create persists an immutable statement. It performs no funds checks.
	Create(ctx context.Context, create dto.StatementCreate) (*dto.StatementRead, error)

	// Get retrieves a statement by ID, or (nil, nil) when absent.
	Get(ctx context.Context, id uuid.UUID) (*dto.StatementRead, error)

	// ListByUser lists the statements owned by userID, oldest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.StatementRead, error)

	// GetUserBalance derives userID's balance from every statement that
	// references them and returns it with their owned history.
	GetUserBalance(ctx context.Context, userID uuid.UUID) (*dto.Balance, error)
}
