package infra

import (
	"errors"
	"fmt"

	"github.com/amirasaad/ledger/pkg/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUnsupportedDriver is returned for a DATABASE_DRIVER with no dialector.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// NewDBConnection opens a GORM connection for the configured driver and
// applies the pool settings. appEnv selects the SQL log level.
func NewDBConnection(
	cnf *config.DB,
	appEnv string,
) (*gorm.DB, error) {
	if cnf.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	dialector, err := dialectorFor(cnf.Driver, cnf.Url)
	if err != nil {
		return nil, err
	}

	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}

	connection, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logMode),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	maxOpen := cnf.MaxOpenConns
	if cnf.Driver == "sqlite" {
		// sqlite allows a single writer; one connection avoids SQLITE_BUSY.
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(cnf.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cnf.ConnMaxLifetime)

	return connection, nil
}

func dialectorFor(driver, url string) (gorm.Dialector, error) {
	switch driver {
	case "", "postgres":
		return postgres.Open(url), nil
	case "mysql":
		return mysql.Open(url), nil
	case "sqlite":
		return sqlite.Open(url), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}
