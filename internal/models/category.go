package models

import (
	"time"
)

const (
	CategoryDefault = "DEFAULT"
	CategoryCustom  = "CUSTOM"
)

// DefaultCategoryName is the display name of the always-present folder
// created when a user activates a language pair.
const DefaultCategoryName = "My Words"

// Category is a word folder scoped to one (user, language pair). Exactly one
// DEFAULT category exists per scope; DEFAULT categories are never renamed or
// deleted.
type Category struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:100;not null;uniqueIndex:idx_categories_owner_name" json:"name"`
	Slug       string    `gorm:"size:100;not null" json:"slug"`
	Type       string    `gorm:"size:10;not null;default:'CUSTOM'" json:"type"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_categories_owner_name;index" json:"user_id"`
	LanguageID uint      `gorm:"not null;uniqueIndex:idx_categories_owner_name" json:"language_id"`
	Words      []Word    `gorm:"many2many:category_words" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
