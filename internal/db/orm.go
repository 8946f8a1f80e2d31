package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"ise-marketing/propdesk/internal/constants"
	"ise-marketing/propdesk/internal/logging"
	gormModels "ise-marketing/propdesk/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store owns the connection pools. It is created once by main (or a test)
// and handed to whatever needs database access.
type Store struct {
	Driver string
	ORM    *gorm.DB
	SQL    *sqlx.DB

	// closeSQL is false when SQL shares the ORM's *sql.DB
	closeSQL bool
}

type Options struct {
	Driver     string // postgres | sqlite
	DSN        string // postgres DSN or sqlite path
	MaxOpen    int
	MaxIdle    int
	MaxRetries int
}

type gormWriter struct{}

func (gormWriter) Printf(format string, args ...interface{}) {
	logging.GetLogger().Warnf(format, args...)
}

func newGormLogger() logger.Interface {
	return logger.New(gormWriter{}, logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Open connects both pools. Postgres gets a second pool through lib/pq for
// raw sqlx queries; sqlite shares one *sql.DB between gorm and sqlx.
func Open(ctx context.Context, opts Options) (*Store, error) {
	cfg := &gorm.Config{
		Logger:         newGormLogger(),
		TranslateError: true,
	}

	switch opts.Driver {
	case "postgres":
		orm, err := gorm.Open(postgres.Open(opts.DSN), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		sqlDB, err := connectPostgres(ctx, opts.DSN, opts.MaxRetries)
		if err != nil {
			return nil, err
		}
		store := &Store{Driver: opts.Driver, ORM: orm, SQL: sqlDB, closeSQL: true}
		store.tunePool(opts)
		logging.Info("Connected to Postgres", "max_open", opts.MaxOpen)
		return store, nil

	case "sqlite":
		if dir := filepath.Dir(opts.DSN); opts.DSN != ":memory:" && dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory %s: %w", dir, err)
			}
		}
		orm, err := gorm.Open(sqlite.Open(opts.DSN), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		store, err := FromGorm(orm)
		if err != nil {
			return nil, err
		}
		logging.Info("Opened SQLite database", "path", opts.DSN)
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

// FromGorm wraps an existing gorm handle, sharing its pool with sqlx.
// Tests use it with an in-memory sqlite database.
func FromGorm(orm *gorm.DB) (*Store, error) {
	sqlDB, err := orm.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}
	driver := orm.Dialector.Name()
	sqlxName := driver
	if driver == "sqlite" {
		// mattn/go-sqlite3 registers as sqlite3; sqlx picks bind style from this name
		sqlxName = "sqlite3"
		sqlDB.SetMaxOpenConns(1)
	}
	return &Store{
		Driver: driver,
		ORM:    orm,
		SQL:    sqlx.NewDb(sqlDB, sqlxName),
	}, nil
}

func (s *Store) tunePool(opts Options) {
	if opts.MaxOpen <= 0 {
		return
	}
	if sqlDB, err := s.ORM.DB(); err == nil {
		sqlDB.SetMaxOpenConns(opts.MaxOpen)
		sqlDB.SetMaxIdleConns(opts.MaxIdle)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	s.SQL.SetMaxOpenConns(opts.MaxOpen)
	s.SQL.SetMaxIdleConns(opts.MaxIdle)
}

// AutoMigrate creates or updates the property tables. Names are unique
// regardless of case.
func (s *Store) AutoMigrate(ctx context.Context) error {
	if err := s.ORM.WithContext(ctx).AutoMigrate(&gormModels.Property{}, &gormModels.PropertyContact{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	if err := s.ORM.WithContext(ctx).Exec(constants.PropertyNameLowerIndex).Error; err != nil {
		return fmt.Errorf("failed to create name index: %w", err)
	}
	return nil
}

// Ping checks the raw pool.
func (s *Store) Ping(ctx context.Context) error {
	return s.SQL.PingContext(ctx)
}

func (s *Store) Close() error {
	var firstErr error
	if s.closeSQL {
		if err := s.SQL.Close(); err != nil {
			firstErr = err
		}
	}
	if sqlDB, err := s.ORM.DB(); err == nil {
		if err := sqlDB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
