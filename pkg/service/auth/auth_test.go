package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/ledger/internal/fixtures/mocks"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain/user"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/repository"
	authsvc "github.com/amirasaad/ledger/pkg/service/auth"
	"github.com/amirasaad/ledger/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var jwtCfg = &config.Jwt{Secret: "test-secret", Expiry: time.Hour}

func setupAuth(t *testing.T) (*mocks.MockUnitOfWork, *mocks.MockUserRepository) {
	t.Helper()
	uow := mocks.NewMockUnitOfWork(t)
	userRepo := mocks.NewMockUserRepository(t)
	uow.EXPECT().UserRepository().Return(userRepo, nil).Maybe()
	uow.EXPECT().Do(mock.Anything, mock.Anything).RunAndReturn(
		func(ctx context.Context, fn func(repository.UnitOfWork) error) error {
			return fn(uow)
		},
	).Maybe()
	return uow, userRepo
}

func storedUser(t *testing.T, password string) *dto.UserRead {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &dto.UserRead{
		ID:             uuid.New(),
		Name:           "alice",
		Email:          "alice@example.com",
		HashedPassword: hash,
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	uow, userRepo := setupAuth(t)
	u := storedUser(t, "password")
	userRepo.EXPECT().GetByEmail(mock.Anything, "alice@example.com").Return(u, nil).Once()

	svc := authsvc.NewWithJWT(uow, jwtCfg, slog.Default())
	got, err := svc.Login(context.Background(), "Alice@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestLogin_InvalidPassword(t *testing.T) {
	t.Parallel()
	uow, userRepo := setupAuth(t)
	userRepo.EXPECT().GetByEmail(mock.Anything, mock.Anything).Return(storedUser(t, "password"), nil)

	svc := authsvc.NewWithJWT(uow, jwtCfg, slog.Default())
	got, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, user.ErrUserUnauthorized)
	assert.Nil(t, got)
}

func TestLogin_UserNotFound(t *testing.T) {
	t.Parallel()
	uow, userRepo := setupAuth(t)
	userRepo.EXPECT().GetByEmail(mock.Anything, mock.Anything).Return(nil, nil)

	svc := authsvc.NewWithJWT(uow, jwtCfg, slog.Default())
	got, err := svc.Login(context.Background(), "nobody@example.com", "password")
	assert.ErrorIs(t, err, user.ErrUserUnauthorized)
	assert.Nil(t, got)
}

func TestLogin_RepositoryError(t *testing.T) {
	t.Parallel()
	uow, userRepo := setupAuth(t)
	expectedErr := errors.New("db error")
	userRepo.EXPECT().GetByEmail(mock.Anything, mock.Anything).Return(nil, expectedErr)

	svc := authsvc.NewWithJWT(uow, jwtCfg, slog.Default())
	_, err := svc.Login(context.Background(), "alice@example.com", "password")
	assert.ErrorIs(t, err, expectedErr)
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	t.Parallel()
	uow := mocks.NewMockUnitOfWork(t)
	svc := authsvc.NewWithJWT(uow, jwtCfg, slog.Default())
	u := &dto.UserRead{ID: uuid.New(), Name: "alice", Email: "alice@example.com"}

	signed, err := svc.GenerateToken(context.Background(), u)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(*jwt.Token) (any, error) {
		return []byte(jwtCfg.Secret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, "alice", claims["name"])

	id, err := svc.GetCurrentUserId(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestGetCurrentUserId_InvalidToken(t *testing.T) {
	t.Parallel()
	svc := authsvc.NewWithJWT(mocks.NewMockUnitOfWork(t), jwtCfg, slog.Default())
	_, err := svc.GetCurrentUserId(&jwt.Token{})
	assert.ErrorIs(t, err, user.ErrUserUnauthorized)
}

func TestGetCurrentUserId_MissingClaim(t *testing.T) {
	t.Parallel()
	svc := authsvc.NewWithJWT(mocks.NewMockUnitOfWork(t), jwtCfg, slog.Default())
	_, err := svc.GetCurrentUserId(jwt.New(jwt.SigningMethodHS256))
	assert.ErrorIs(t, err, user.ErrUserUnauthorized)
}

func TestGetCurrentUserId_MalformedClaim(t *testing.T) {
	t.Parallel()
	svc := authsvc.NewWithJWT(mocks.NewMockUnitOfWork(t), jwtCfg, slog.Default())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "nope"})
	_, err := svc.GetCurrentUserId(token)
	assert.ErrorIs(t, err, user.ErrUserUnauthorized)
}

func TestBasicAuth_Login(t *testing.T) {
	t.Parallel()
	uow, userRepo := setupAuth(t)
	u := storedUser(t, "s3cret")
	userRepo.EXPECT().GetByEmail(mock.Anything, "alice@example.com").Return(u, nil)

	svc := authsvc.NewWithBasic(uow, slog.Default())
	got, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	token, err := svc.GenerateToken(context.Background(), got)
	require.NoError(t, err)
	assert.Empty(t, token)

	_, err = svc.Login(context.Background(), "alice@example.com", "password")
	assert.ErrorIs(t, err, user.ErrUserUnauthorized)
}
