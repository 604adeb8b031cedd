package services

import (
	"errors"
	"fmt"

	"github.com/mkweon/wordvault-backend/internal/models"
	"github.com/mkweon/wordvault-backend/internal/scope"
	"github.com/mkweon/wordvault-backend/internal/textnorm"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category doesn't exist")
	ErrNotOwner         = errors.New("you don't have access to that")
	ErrPairMismatch     = errors.New("category does not belong to that language pair")
	ErrDefaultImmutable = errors.New("default categories cannot be renamed or deleted")
	ErrNameTaken        = errors.New("you already have a category with this name")
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List returns all categories owned by the request scope. Never fails on an
// empty result.
func (s *CategoryService) List(sc scope.Scope) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Scopes(scope.ForOwner(sc)).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Get resolves a category by id and enforces the access chain in order:
// existence, then ownership, then pair scoping. A real, owned category
// addressed under the wrong pair is a client error, not a 403 or 404.
func (s *CategoryService) Get(sc scope.Scope, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	if category.UserID != sc.UserID {
		return nil, ErrNotOwner
	}
	if category.LanguageID != sc.PairID {
		return nil, ErrPairMismatch
	}
	return &category, nil
}

// Create adds a CUSTOM category. The name arrives field-validated; it is
// stored title-cased with a derived slug. Name uniqueness within the scope is
// checked before creating, with the unique index as the race backstop.
func (s *CategoryService) Create(sc scope.Scope, name string) (*models.Category, error) {
	displayName := textnorm.ProperNoun(name)

	if err := s.checkNameFree(sc, displayName, 0); err != nil {
		return nil, err
	}

	category := models.Category{
		Name:       displayName,
		Slug:       textnorm.Slugify(displayName),
		Type:       models.CategoryCustom,
		UserID:     sc.UserID,
		LanguageID: sc.PairID,
	}
	if err := s.db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// Rename updates a category's name and slug atomically. DEFAULT categories
// are rename-immune regardless of ownership.
func (s *CategoryService) Rename(sc scope.Scope, id uint, name string) (*models.Category, error) {
	category, err := s.Get(sc, id)
	if err != nil {
		return nil, err
	}
	if category.Type == models.CategoryDefault {
		return nil, ErrDefaultImmutable
	}

	displayName := textnorm.ProperNoun(name)
	if err := s.checkNameFree(sc, displayName, category.ID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name": displayName,
		"slug": textnorm.Slugify(displayName),
	}
	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("failed to rename category: %w", err)
	}
	return category, nil
}

// Delete removes a CUSTOM category. Word associations are dropped but the
// words themselves persist under their remaining categories, always including
// the DEFAULT one.
func (s *CategoryService) Delete(sc scope.Scope, id uint) error {
	category, err := s.Get(sc, id)
	if err != nil {
		return err
	}
	if category.Type == models.CategoryDefault {
		return ErrDefaultImmutable
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(category).Association("Words").Clear(); err != nil {
			return fmt.Errorf("failed to clear word associations: %w", err)
		}
		if err := tx.Delete(category).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
}

// Words returns all of the scope's words associated with the category,
// additionally filtered to the request's (user, pair) so nothing leaks across
// pairs.
func (s *CategoryService) Words(sc scope.Scope, id uint) (*models.Category, []models.Word, error) {
	category, err := s.Get(sc, id)
	if err != nil {
		return nil, nil, err
	}

	var words []models.Word
	err = s.db.
		Joins("JOIN category_words ON category_words.word_id = words.id").
		Where("category_words.category_id = ?", category.ID).
		Scopes(scope.ForOwner(sc)).
		Order("words.id").
		Find(&words).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list words for category: %w", err)
	}
	return category, words, nil
}

func (s *CategoryService) checkNameFree(sc scope.Scope, displayName string, selfID uint) error {
	var existing models.Category
	query := s.db.Scopes(scope.ForOwner(sc)).Where("name = ?", displayName)
	if selfID != 0 {
		query = query.Where("id <> ?", selfID)
	}
	if err := query.First(&existing).Error; err == nil {
		return ErrNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check category name: %w", err)
	}
	return nil
}
