// Package user provides registration and lookup of ledger users.
package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/domain/user"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
)

// Service provides business logic for user operations.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a new Service. bus may be nil.
func New(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		bus:    bus,
		logger: logger,
	}
}

// CreateUser registers a user. The email must not be registered yet.
func (s *Service) CreateUser(
	ctx context.Context,
	name, email, password string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "CreateUser", "email", email)
	newUser, err := user.New(name, email, password)
	if err != nil {
		log.Error("Invalid user", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		exists, err := repo.ExistsByEmail(ctx, newUser.Email)
		if err != nil {
			return err
		}
		if exists {
			return user.ErrUserAlreadyExists
		}
		return repo.Create(ctx, &dto.UserCreate{
			ID:       newUser.ID,
			Name:     newUser.Name,
			Email:    newUser.Email,
			Password: newUser.Password,
		})
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		err = user.ErrUserAlreadyExists
	}
	if err != nil {
		log.Error("CreateUser failed", "error", err)
		return nil, err
	}
	log.Info("User created", "userID", newUser.ID)

	if s.bus != nil {
		if perr := s.bus.Publish(ctx, events.UserRegistered{
			ID:        uuid.New(),
			UserID:    newUser.ID,
			Email:     newUser.Email,
			Timestamp: time.Now().UTC(),
		}); perr != nil {
			log.Error("Failed to publish user event", "error", perr)
		}
	}

	return &dto.UserRead{
		ID:             newUser.ID,
		Name:           newUser.Name,
		Email:          newUser.Email,
		HashedPassword: newUser.Password,
		CreatedAt:      newUser.CreatedAt,
		UpdatedAt:      newUser.UpdatedAt,
	}, nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(
	ctx context.Context,
	userID uuid.UUID,
) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		return err
	})
	if err == nil && u == nil {
		err = user.ErrUserNotFound
	}
	if err != nil {
		u = nil
	}
	return
}

// GetUserByEmail retrieves a user by email.
func (s *Service) GetUserByEmail(
	ctx context.Context,
	email string,
) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByEmail(ctx, user.NormalizeEmail(email))
		return err
	})
	if err == nil && u == nil {
		err = user.ErrUserNotFound
	}
	if err != nil {
		u = nil
	}
	return
}
