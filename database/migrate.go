package database

import (
	"fmt"

	"promolink_backend/internal/config"
	"promolink_backend/internal/logger"
	"promolink_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm инициализирует GORM с URL из config.yaml
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}

	// Расширение нужно для server-side default uuid_generate_v4()
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.InfluencerProfile{},
		&models.BrandProfile{},
		&models.Post{},
		&models.Submission{},
		&models.Notification{},
		&models.PaymentTransaction{},
	)
	if err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	logger.Info("AutoMigrate completed")
	return nil
}
