package infra

import (
	"github.com/amirasaad/ledger/infra/repository/statement"
	"github.com/amirasaad/ledger/infra/repository/user"
	"gorm.io/gorm"
)

// Models lists every persisted model in migration order.
func Models() []any {
	return []any{
		&user.User{},
		&statement.Statement{},
	}
}

// AutoMigrate creates or updates the tables, columns and indexes of Models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
