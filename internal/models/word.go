package models

import (
	"time"
)

// Word is a learned vocabulary pair. The target-language term l2_word is the
// dedup key within a (user, language pair) scope; re-ingesting the same term
// merges category associations instead of creating a duplicate.
type Word struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	L1Word     string     `gorm:"size:50;not null" json:"l1Word"`
	L2Word     string     `gorm:"size:50;not null;uniqueIndex:idx_words_owner_l2" json:"l2Word"`
	Example    *string    `gorm:"type:text" json:"example"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_words_owner_l2;index" json:"user_id"`
	LanguageID uint       `gorm:"not null;uniqueIndex:idx_words_owner_l2" json:"language_id"`
	Categories []Category `gorm:"many2many:category_words" json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
