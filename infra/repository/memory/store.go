// Package memory provides process-local repositories used by the CLI, the
// DATABASE_DRIVER=memory mode and service tests.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/repository"
	statementrepo "github.com/amirasaad/ledger/pkg/repository/statement"
	userrepo "github.com/amirasaad/ledger/pkg/repository/user"
)

// store is the shared state behind the memory repositories.
type store struct {
	mu         sync.RWMutex
	users      map[string]*dto.UserRead
	statements []*dto.StatementRead
}

// UoW is a UnitOfWork over in-process maps.
//
// Do does not isolate concurrent callers or roll back partial writes;
// every operation built on it performs a single write after its checks and
// relies on lock.Locker for mutual exclusion.
type UoW struct {
	store *store
}

// NewUoW returns an empty in-memory UnitOfWork.
func NewUoW() *UoW {
	return &UoW{store: &store{users: make(map[string]*dto.UserRead)}}
}

func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(u)
}

func (u *UoW) GetRepository(repoType any) (any, error) {
	switch reflect.TypeOf(repoType) {
	case reflect.TypeOf((*userrepo.Repository)(nil)):
		return &userRepository{store: u.store}, nil
	case reflect.TypeOf((*statementrepo.Repository)(nil)):
		return &statementRepository{store: u.store}, nil
	}
	return nil, fmt.Errorf("%w: %T", repository.ErrUnsupportedRepository, repoType)
}

func (u *UoW) UserRepository() (userrepo.Repository, error) {
	return &userRepository{store: u.store}, nil
}

func (u *UoW) StatementRepository() (statementrepo.Repository, error) {
	return &statementRepository{store: u.store}, nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
