package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avast/retry-go"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/config"
	apperrors "github.com/Chenxicheng/mcloud-oauth2-server/pkg/errors"
)

// Store provides data access for users, authorities and scopes
type Store struct {
	db *gorm.DB
}

// Open connects to the configured database, retrying transient connection
// failures, and migrates the schema.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	var dialector gorm.Dialector
	switch cfg.Database.Type {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
			return nil, apperrors.NewDatabaseErrorWithCause("failed to create database directory", err)
		}
		dialector = sqlite.Open(cfg.Database.Path)
	case "postgres":
		dialector = postgres.Open(cfg.Database.URL)
	default:
		return nil, apperrors.NewConfigInvalidError(fmt.Sprintf("unsupported database type: %s", cfg.Database.Type))
	}

	var db *gorm.DB
	err := retry.Do(
		func() error {
			var openErr error
			db, openErr = gorm.Open(dialector, &gorm.Config{
				Logger:         logger.Default.LogMode(logger.Silent), // Reduce log noise
				TranslateError: true,
			})
			return openErr
		},
		retry.Attempts(uint(cfg.Database.ConnectAttempts)),
		retry.Delay(cfg.Database.ConnectDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, apperrors.NewConnectionFailedError(cfg.Database.Type, err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		return nil, apperrors.NewDatabaseErrorWithCause("failed to migrate database", err)
	}

	return store, nil
}

// migrate runs database migrations
func (s *Store) migrate() error {
	return s.db.AutoMigrate(
		&User{},
		&Authority{},
		&Scope{},
		&AuditEntry{},
	)
}

// Transaction runs fn inside a single all-or-nothing database transaction.
// The store handed to fn shares the transaction; any error rolls the whole
// operation back.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
	if err == nil {
		return nil
	}
	// Typed failures raised inside fn propagate unchanged.
	if apperrors.IsServerError(err) {
		return err
	}
	return apperrors.NewTransactionFailedError(err)
}

// HealthCheck performs a database ping
func (s *Store) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperrors.NewDatabaseErrorWithCause("failed to get database instance", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return apperrors.NewDatabaseErrorWithCause("database ping failed", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperrors.NewDatabaseErrorWithCause("failed to get database instance", err)
	}
	return sqlDB.Close()
}

// isNotFound reports whether err is the driver's empty-result sentinel.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicateKey reports whether err is a unique-constraint violation.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
