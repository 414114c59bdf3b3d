package repository

import (
	"errors"

	"github.com/amirasaad/ledger/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain translates GORM errors found anywhere in err's chain
// into domain errors. Unmapped errors are returned unchanged.
//
// Duplicate key detection requires the connection to be opened with
// gorm.Config.TranslateError.
func MapGormErrorToDomain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyExists
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return domain.ErrValidation
	}
	return err
}

// WrapError runs op and maps its error with MapGormErrorToDomain.
//
//	err := WrapError(func() error {
//		return r.db.WithContext(ctx).Create(model).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
