package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/mkweon/wordvault-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter int64

// OpenDB returns an isolated in-memory database migrated with the full
// schema. TranslateError mirrors production so unique-constraint races
// surface as gorm.ErrDuplicatedKey in tests too.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Language{},
		&models.Category{},
		&models.Word{},
		&models.SystemLog{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying DB: %v", err)
	}
	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}
	})

	return db
}

// SeedLanguage inserts one language pair and returns it.
func SeedLanguage(t *testing.T, db *gorm.DB, l1, l2 string) models.Language {
	t.Helper()
	pair := models.Language{L1: l1, L2: l2}
	if err := db.Create(&pair).Error; err != nil {
		t.Fatalf("failed to seed language %s-%s: %v", l1, l2, err)
	}
	return pair
}

// SeedUser inserts a user with a placeholder password digest.
func SeedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		FirstName: "Ron",
		LastName:  "Weasley",
		Email:     email,
		Password:  "$2a$10$placeholderplaceholderplaceholde",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return user
}
