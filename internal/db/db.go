package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fleet-service-backend/config"
	"fleet-service-backend/internal/auth"
	"fleet-service-backend/internal/logs"
	"fleet-service-backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logs.Logger.Info("database initialization complete")
	return db, nil
}

// Migrate creates or updates the schema. Shared with tests, which run
// it against in-memory sqlite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.ReferenceItem{},
		&model.Machine{},
		&model.Maintenance{},
		&model.Claim{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

// Bootstrap seeds the initial manager account when configured and the
// username is not taken yet. Without a manager nobody can administer
// the reference catalog on a fresh deployment.
func Bootstrap(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	if cfg.Bootstrap.ManagerUsername == "" || cfg.Bootstrap.ManagerPassword == "" {
		return nil
	}

	var existing model.User
	err := db.WithContext(ctx).Where("username = ?", cfg.Bootstrap.ManagerUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("bootstrap lookup: %w", err)
	}

	hash, err := auth.HashPassword(cfg.Bootstrap.ManagerPassword, cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("bootstrap hash: %w", err)
	}

	manager := model.User{
		Username:     cfg.Bootstrap.ManagerUsername,
		PasswordHash: hash,
		Role:         model.RoleManager,
	}
	if err := db.WithContext(ctx).Create(&manager).Error; err != nil {
		return fmt.Errorf("bootstrap create: %w", err)
	}
	logs.Logger.WithField("username", manager.Username).Info("seeded manager account")
	return nil
}
