package statement

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/ledger/pkg/domain/statement"
	"github.com/amirasaad/ledger/pkg/dto"
	repo "github.com/amirasaad/ledger/pkg/repository/statement"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// balanceExpr credits deposits and received transfers, debits withdrawals
// and debits sent transfers, in a single SUM over signed amounts.
const balanceExpr = `COALESCE(SUM(CASE
	WHEN user_id = @user AND type IN (@deposit, @transfer) THEN amount
	WHEN user_id = @user AND type = @withdraw THEN -amount
	WHEN sender_id = @user AND type = @transfer THEN -amount
	ELSE 0 END), 0) AS balance`

type repository struct {
	db *gorm.DB
}

// New returns a GORM backed statement repository bound to db.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create dto.StatementCreate,
) (*dto.StatementRead, error) {
	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	if create.CreatedAt.IsZero() {
		create.CreatedAt = time.Now().UTC()
	}
	model := &Statement{
		ID:          create.ID,
		UserID:      create.UserID,
		SenderID:    create.SenderID,
		Amount:      create.Amount,
		Description: create.Description,
		Type:        string(create.Type),
		CreatedAt:   create.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return mapModelToDTO(model), nil
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.StatementRead, error) {
	var model Statement
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&model), nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.StatementRead, error) {
	var models []Statement
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, seq ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.StatementRead, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDTO(&models[i]))
	}
	return result, nil
}

func (r *repository) GetUserBalance(
	ctx context.Context,
	userID uuid.UUID,
) (*dto.Balance, error) {
	var row struct {
		Balance int64
	}
	err := r.db.WithContext(ctx).
		Model(&Statement{}).
		Select(balanceExpr, map[string]any{
			"user":     userID,
			"deposit":  string(statement.Deposit),
			"withdraw": string(statement.Withdraw),
			"transfer": string(statement.Transfer),
		}).
		Where("user_id = ? OR sender_id = ?", userID, userID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	history, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.Balance{Balance: row.Balance, Statement: history}, nil
}

func mapModelToDTO(model *Statement) *dto.StatementRead {
	return &dto.StatementRead{
		ID:          model.ID,
		UserID:      model.UserID,
		SenderID:    model.SenderID,
		Amount:      model.Amount,
		Description: model.Description,
		Type:        statement.OperationType(model.Type),
		CreatedAt:   model.CreatedAt,
	}
}

var _ repo.Repository = (*repository)(nil)
