package memory

import (
	"context"
	"time"

	"github.com/amirasaad/ledger/pkg/domain/statement"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/google/uuid"
)

type statementRepository struct {
	store *store
}

func (r *statementRepository) Create(
	_ context.Context,
	create dto.StatementCreate,
) (*dto.StatementRead, error) {
	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	if create.CreatedAt.IsZero() {
		create.CreatedAt = time.Now().UTC()
	}
	rec := &dto.StatementRead{
		ID:          create.ID,
		UserID:      create.UserID,
		SenderID:    create.SenderID,
		Amount:      create.Amount,
		Description: create.Description,
		Type:        create.Type,
		CreatedAt:   create.CreatedAt,
	}

	r.store.mu.Lock()
	r.store.statements = append(r.store.statements, rec)
	r.store.mu.Unlock()

	read := *rec
	return &read, nil
}

func (r *statementRepository) Get(_ context.Context, id uuid.UUID) (*dto.StatementRead, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, s := range r.store.statements {
		if s.ID == id {
			read := *s
			return &read, nil
		}
	}
	return nil, nil
}

// ListByUser returns statements in insertion order, which is creation order.
func (r *statementRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*dto.StatementRead, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.listLocked(userID), nil
}

func (r *statementRepository) GetUserBalance(_ context.Context, userID uuid.UUID) (*dto.Balance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records := make([]*statement.Statement, 0, len(r.store.statements))
	for _, s := range r.store.statements {
		records = append(records, s.ToDomain())
	}
	return &dto.Balance{
		Balance:   statement.Balance(userID, records),
		Statement: r.listLocked(userID),
	}, nil
}

func (r *statementRepository) listLocked(userID uuid.UUID) []*dto.StatementRead {
	result := make([]*dto.StatementRead, 0)
	for _, s := range r.store.statements {
		if s.UserID == userID {
			read := *s
			result = append(result, &read)
		}
	}
	return result
}
