package repository

import (
	"context"
	"fmt"
	"reflect"

	"github.com/amirasaad/ledger/infra/repository/statement"
	"github.com/amirasaad/ledger/infra/repository/user"
	"github.com/amirasaad/ledger/pkg/repository"
	statementrepo "github.com/amirasaad/ledger/pkg/repository/statement"
	userrepo "github.com/amirasaad/ledger/pkg/repository/user"
	"gorm.io/gorm"
)

var (
	userRepoType      = reflect.TypeOf((*userrepo.Repository)(nil))
	statementRepoType = reflect.TypeOf((*statementrepo.Repository)(nil))
)

// UoW provides the transaction boundary and repository access over GORM.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			userRepoType:      func(db *gorm.DB) any { return user.New(db) },
			statementRepoType: func(db *gorm.DB) any { return statement.New(db) },
		},
	}
}

// Do runs fn in a database transaction. Errors leaving the transaction are
// translated to domain errors.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry})
	})
	return MapGormErrorToDomain(err)
}

// GetRepository returns the repository keyed by a typed nil interface
// pointer such as (*user.Repository)(nil). Outside Do it is bound to the
// root connection.
func (u *UoW) GetRepository(repoType any) (any, error) {
	constructor, ok := u.repoRegistry[reflect.TypeOf(repoType)]
	if !ok {
		return nil, fmt.Errorf("%w: %T", repository.ErrUnsupportedRepository, repoType)
	}
	return constructor(u.session()), nil
}

func (u *UoW) UserRepository() (userrepo.Repository, error) {
	repoAny, err := u.GetRepository((*userrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	return repoAny.(userrepo.Repository), nil
}

func (u *UoW) StatementRepository() (statementrepo.Repository, error) {
	repoAny, err := u.GetRepository((*statementrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	return repoAny.(statementrepo.Repository), nil
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

var _ repository.UnitOfWork = (*UoW)(nil)
