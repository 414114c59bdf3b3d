package repository

import (
	"context"
	"errors"

	"github.com/amirasaad/ledger/pkg/repository/statement"
	"github.com/amirasaad/ledger/pkg/repository/user"
)

// ErrUnsupportedRepository is returned by GetRepository for an unknown key.
var ErrUnsupportedRepository = errors.New("unsupported repository type")

// UnitOfWork defines the contract for transactional work and repository access.
//
// Repositories obtained from the UnitOfWork passed to Do share the
// transaction, so every read and the final write of an operation observe
// the same snapshot and commit or roll back together.
//
// Example usage:
//
//	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
//		repoAny, err := uow.GetRepository((*user.Repository)(nil))
//		if err != nil {
//			return err
//		}
//		repo := repoAny.(user.Repository)
//		...
//	})
type UnitOfWork interface {
	// Do executes fn within a transaction boundary.
	// If fn returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns the repository identified by a typed nil
	// interface pointer, bound to the current session.
	GetRepository(repoType any) (any, error)

	UserRepository() (user.Repository, error)
	StatementRepository() (statement.Repository, error)
}
