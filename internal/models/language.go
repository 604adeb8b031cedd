package models

// LanguageCodes is the fixed set of supported country codes.
var LanguageCodes = []string{"KR", "EN", "FR", "HU", "ES", "JA", "ZH"}

// Language is a pre-seeded, read-only language pair (source l1, target l2).
type Language struct {
	ID uint   `gorm:"primaryKey" json:"id"`
	L1 string `gorm:"size:2;not null;uniqueIndex:idx_languages_l1_l2" json:"l1"`
	L2 string `gorm:"size:2;not null;uniqueIndex:idx_languages_l1_l2" json:"l2"`
}
