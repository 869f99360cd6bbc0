// Package db sets up the database connection and schema
package db

import (
	"errors"
	"fmt"

	"taskwell/task-api/internal/model"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	var dialector gorm.Dialector

	dsn := viper.GetString("database.dsn")

	switch driver := viper.GetString("database.driver"); driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	err = db.AutoMigrate(model.User{}, model.Task{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	if err := promoteAdmin(db); err != nil {
		return nil, err
	}

	return db, nil
}

// promoteAdmin grants the ADMIN role to the configured bootstrap account
// if it exists. Without it a fresh deployment has no way to mint its
// first admin.
func promoteAdmin(db *gorm.DB) error {
	username := viper.GetString("admin.username")
	if username == "" {
		return nil
	}

	r := db.Model(model.User{}).
		Where("username = ?", username).
		Update("role", model.RoleAdmin)
	if r.Error != nil && !errors.Is(r.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to promote admin account, %w", r.Error)
	}

	if r.RowsAffected > 0 {
		zap.L().Info("Promoted bootstrap admin", zap.String("username", username))
	}

	return nil
}
