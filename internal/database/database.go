package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mkweon/wordvault-backend/internal/config"
	"github.com/mkweon/wordvault-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the pooled Postgres handle. The handle is passed to each
// component explicitly; there is no package-level instance.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return db, nil
}

// Migrate runs AutoMigrate for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Language{},
		&models.Category{},
		&models.Word{},
		&models.SystemLog{},
	)
}

// SeedLanguages inserts every ordered pair of distinct supported codes.
// Idempotent: existing pairs are left untouched.
func SeedLanguages(db *gorm.DB) error {
	for _, l1 := range models.LanguageCodes {
		for _, l2 := range models.LanguageCodes {
			if l1 == l2 {
				continue
			}
			pair := models.Language{L1: l1, L2: l2}
			if err := db.Where("l1 = ? AND l2 = ?", l1, l2).FirstOrCreate(&pair).Error; err != nil {
				return fmt.Errorf("failed to seed language pair %s-%s: %w", l1, l2, err)
			}
		}
	}
	return nil
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
