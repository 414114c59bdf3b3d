package infra

import (
	"fmt"
	"log/slog"
	"net/url"

	infra_lock "github.com/amirasaad/ledger/infra/lock"
	infra_repository "github.com/amirasaad/ledger/infra/repository"
	"github.com/amirasaad/ledger/infra/repository/memory"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/lock"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/redis/go-redis/v9"
)

// NewUnitOfWork builds the persistence layer selected by DATABASE_DRIVER.
// The returned cleanup closes the underlying pool.
func NewUnitOfWork(
	cfg *config.App,
	logger *slog.Logger,
) (repository.UnitOfWork, func() error, error) {
	if cfg.DB.Driver == "memory" {
		logger.Warn("Using in-memory storage; data is lost on exit")
		return memory.NewUoW(), func() error { return nil }, nil
	}

	db, err := NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, nil, fmt.Errorf("auto migrate: %w", err)
		}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connected",
		"driver", cfg.DB.Driver,
		"url", maskDSN(cfg.DB.Url))
	return infra_repository.NewUoW(db), sqlDB.Close, nil
}

// NewLocker builds the per-user Locker selected by LOCK_BACKEND.
func NewLocker(
	cfg *config.App,
	logger *slog.Logger,
) (lock.Locker, func() error, error) {
	switch cfg.Lock.Backend {
	case "", "memory":
		return infra_lock.NewMemoryLocker(cfg.Lock.Wait), func() error { return nil }, nil
	case "redis":
		opt, err := redisOptions(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		l := infra_lock.NewRedisLocker(
			redis.NewClient(opt),
			cfg.Redis.KeyPrefix,
			cfg.Lock.TTL,
			cfg.Lock.Wait,
			logger,
		)
		logger.Info("Using Redis for user locks", "url", maskDSN(cfg.Redis.URL))
		return l, l.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported lock backend %q", cfg.Lock.Backend)
	}
}

func redisOptions(cfg *config.Redis) (*redis.Options, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	opt.DialTimeout = cfg.DialTimeout
	opt.ReadTimeout = cfg.ReadTimeout
	opt.WriteTimeout = cfg.WriteTimeout
	return opt, nil
}

// maskDSN hides the password of a URL-style DSN before it is logged.
func maskDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}
