package statement

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/ledger/pkg/domain/statement"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteRepo(t *testing.T) *repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&Statement{}))
	return &repository{db: db}
}

func create(
	t *testing.T,
	repo *repository,
	userID uuid.UUID,
	sender *uuid.UUID,
	amount int64,
	opType statement.OperationType,
) *dto.StatementRead {
	t.Helper()
	s, err := repo.Create(context.Background(), dto.StatementCreate{
		UserID:      userID,
		SenderID:    sender,
		Amount:      amount,
		Description: string(opType),
		Type:        opType,
	})
	require.NoError(t, err)
	return s
}

func TestRepository_CreateAssignsIdentity(t *testing.T) {
	repo := newSQLiteRepo(t)
	userID := uuid.New()

	s := create(t, repo, userID, nil, 200, statement.Deposit)
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.False(t, s.CreatedAt.IsZero())
	assert.Nil(t, s.SenderID)

	got, err := repo.Get(context.Background(), s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, int64(200), got.Amount)
	assert.Equal(t, statement.Deposit, got.Type)
}

func TestRepository_GetMissingReturnsNil(t *testing.T) {
	repo := newSQLiteRepo(t)

	got, err := repo.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_ListByUserOrdersByCreation(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	userID := uuid.New()
	other := uuid.New()
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Same timestamp: insertion order breaks the tie.
	for i, amount := range []int64{3, 1, 2} {
		_, err := repo.Create(ctx, dto.StatementCreate{
			UserID:      userID,
			Amount:      amount,
			Description: "deposit",
			Type:        statement.Deposit,
			CreatedAt:   ts.Add(time.Duration(i/2) * time.Second),
		})
		require.NoError(t, err)
	}
	create(t, repo, other, nil, 99, statement.Deposit)

	list, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{3, 1, 2}, []int64{list[0].Amount, list[1].Amount, list[2].Amount})
}

func TestRepository_GetUserBalance(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	create(t, repo, alice, nil, 200, statement.Deposit)
	create(t, repo, alice, nil, 200, statement.Deposit)
	create(t, repo, alice, nil, 100, statement.Withdraw)
	create(t, repo, bob, &alice, 120, statement.Transfer)
	create(t, repo, alice, &bob, 20, statement.Transfer)

	aliceBalance, err := repo.GetUserBalance(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(200+200-100-120+20), aliceBalance.Balance)
	assert.Len(t, aliceBalance.Statement, 4)

	bobBalance, err := repo.GetUserBalance(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(120-20), bobBalance.Balance)
	assert.Len(t, bobBalance.Statement, 1)

	assert.Equal(t, int64(400-100), aliceBalance.Balance+bobBalance.Balance, "transfers conserve funds")
}

func TestRepository_GetUserBalanceEmpty(t *testing.T) {
	repo := newSQLiteRepo(t)

	b, err := repo.GetUserBalance(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), b.Balance)
	assert.Empty(t, b.Statement)
}

func TestRepository_GetUserBalanceQueryShape(t *testing.T) {
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDb.Close() //nolint:errcheck
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	repo := &repository{db: db}
	userID := uuid.New()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(CASE(.+)AS balance FROM "statements" WHERE user_id = (.+) OR sender_id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(300))
	mock.ExpectQuery(`SELECT \* FROM "statements" WHERE user_id = \$1 ORDER BY created_at ASC, seq ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"seq", "id", "user_id", "amount", "description", "type", "created_at"}))

	b, err := repo.GetUserBalance(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(300), b.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
