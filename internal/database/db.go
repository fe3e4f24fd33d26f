package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Shashhank12/Budget-Buddy/internal/config"
	"github.com/Shashhank12/Budget-Buddy/internal/models"
)

// Connect opens the PostgreSQL connection. The handle is returned, not
// stored in a package global, so callers own its lifetime.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema, including the has/sets/selects
// join tables declared on the models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Goal{},
		&models.Category{},
		&models.Transaction{},
	)
}
