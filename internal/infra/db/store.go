package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/config"
)

type Store struct {
	DB *gorm.DB
}

// NewStore connects to Postgres. With no DSN configured the store runs
// in no-db mode: every repository reports errDBUnavailable, which lets
// the service start for smoke testing without a database.
func NewStore(cfg config.Config) (*Store, error) {
	if cfg.PostgresDSN == "" {
		log.Printf("POSTGRES_DSN not set; starting in no-db mode.")
		return &Store{DB: nil}, nil
	}

	gdb, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return &Store{DB: gdb}, nil
}

// Migrate creates or updates the schema for all models.
func (s *Store) Migrate() error {
	if s.DB == nil {
		return errDBUnavailable
	}
	return s.DB.AutoMigrate(
		&CertificateModel{},
		&AuditEventModel{},
	)
}
