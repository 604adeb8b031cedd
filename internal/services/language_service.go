package services

import (
	"errors"
	"fmt"

	"github.com/mkweon/wordvault-backend/internal/models"
	"github.com/mkweon/wordvault-backend/internal/textnorm"
	"gorm.io/gorm"
)

var (
	ErrNoPairsAvailable  = errors.New("no language pairs are available yet")
	ErrPairUnavailable   = errors.New("that language pair is unavailable at this time")
	ErrPairAlreadyActive = errors.New("that language pair is already set up")
	ErrNoUserLanguages   = errors.New("no language pairs exist for that user")
)

type LanguageService struct {
	db *gorm.DB
}

func NewLanguageService(db *gorm.DB) *LanguageService {
	return &LanguageService{db: db}
}

// Codes returns every available pair in "L1-L2" form.
func (s *LanguageService) Codes() ([]string, error) {
	var pairs []models.Language
	if err := s.db.Order("id").Find(&pairs).Error; err != nil {
		return nil, fmt.Errorf("failed to list language pairs: %w", err)
	}
	if len(pairs) == 0 {
		return nil, ErrNoPairsAvailable
	}

	codes := make([]string, len(pairs))
	for i, p := range pairs {
		codes[i] = p.L1 + "-" + p.L2
	}
	return codes, nil
}

// Activate sets up a language pair for a user by creating its DEFAULT
// category. Exactly one DEFAULT category exists per (user, pair); activating
// an already-active pair fails, with the unique index as the race backstop.
func (s *LanguageService) Activate(userID uint, l1, l2 string) (*models.Category, *models.Language, error) {
	var pair models.Language
	if err := s.db.First(&pair, "l1 = ? AND l2 = ?", l1, l2).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrPairUnavailable
		}
		return nil, nil, fmt.Errorf("failed to look up language pair: %w", err)
	}

	var existing models.Category
	err := s.db.Where("user_id = ? AND language_id = ? AND type = ?", userID, pair.ID, models.CategoryDefault).
		First(&existing).Error
	if err == nil {
		return nil, nil, ErrPairAlreadyActive
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to check for default category: %w", err)
	}

	category := models.Category{
		Name:       models.DefaultCategoryName,
		Slug:       textnorm.Slugify(models.DefaultCategoryName),
		Type:       models.CategoryDefault,
		UserID:     userID,
		LanguageID: pair.ID,
	}
	if err := s.db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrPairAlreadyActive
		}
		return nil, nil, fmt.Errorf("failed to create default category: %w", err)
	}

	return &category, &pair, nil
}

// UserLanguageIDs returns the ids of pairs the user has activated, derived
// from their DEFAULT categories.
func (s *LanguageService) UserLanguageIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND type = ?", userID, models.CategoryDefault).
		Order("language_id").
		Pluck("language_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user languages: %w", err)
	}
	if len(ids) == 0 {
		return nil, ErrNoUserLanguages
	}
	return ids, nil
}
