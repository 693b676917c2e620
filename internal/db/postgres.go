package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/akvideo/technikliste-backend/internal/logger"
	"github.com/akvideo/technikliste-backend/internal/types"
)

// Config carries everything the store needs to reach Postgres. It is built
// once at process start (from DATABASE_URL and REQUIRE_SSL) and handed in
// here, the store itself never reads the environment.
type Config struct {
	URL        string
	RequireSSL bool
}

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(cfg Config, log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is empty")
	}

	dsn := cfg.URL
	if !strings.Contains(dsn, "sslmode=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		if cfg.RequireSSL {
			dsn += sep + "sslmode=require"
		} else {
			dsn += sep + "sslmode=disable"
		}
	}

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := s.db.AutoMigrate(
		&types.VerificationRecord{},
		&types.Device{},
	); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
