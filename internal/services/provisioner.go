package services

import (
	"errors"
	"fmt"

	"github.com/mkweon/wordvault-backend/internal/models"
	"github.com/mkweon/wordvault-backend/internal/scope"
	"github.com/mkweon/wordvault-backend/internal/textnorm"
	"gorm.io/gorm"
)

// ErrDefaultCategoryMissing means no DEFAULT category exists for the scope.
// Unreachable in normal operation (activation creates it) but checked
// defensively.
var ErrDefaultCategoryMissing = errors.New("default category not found")

// categoryProvisioner resolves raw category names to ids against a snapshot
// of the scope's categories fetched once per request. Names missing from the
// snapshot are created on demand and appended to it, so later names in the
// same batch reuse the created record instead of issuing a second create.
// The snapshot is request-scoped and discarded afterwards.
type categoryProvisioner struct {
	db        *gorm.DB
	sc        scope.Scope
	existing  []models.Category
	defaultID uint
}

func newCategoryProvisioner(db *gorm.DB, sc scope.Scope) (*categoryProvisioner, error) {
	var existing []models.Category
	if err := db.Scopes(scope.ForOwner(sc)).Find(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	p := &categoryProvisioner{db: db, sc: sc, existing: existing}
	for _, c := range existing {
		if c.Type == models.CategoryDefault {
			p.defaultID = c.ID
			break
		}
	}
	if p.defaultID == 0 {
		return nil, ErrDefaultCategoryMissing
	}
	return p, nil
}

// Resolve maps names to category ids, creating CUSTOM categories on demand.
// Matching is by slug of the normalized name, so "nature" and "Nature"
// resolve to the same folder. The default category id is always included.
func (p *categoryProvisioner) Resolve(names []string) ([]uint, error) {
	ids := make([]uint, 0, len(names)+1)
	seen := make(map[uint]bool)

	for _, raw := range names {
		displayName := textnorm.ProperNoun(textnorm.CollapseSpaces(raw))
		if displayName == "" {
			continue
		}
		slug := textnorm.Slugify(displayName)

		category, err := p.lookup(displayName, slug)
		if err != nil {
			return nil, err
		}
		if !seen[category.ID] {
			seen[category.ID] = true
			ids = append(ids, category.ID)
		}
	}

	if !seen[p.defaultID] {
		ids = append(ids, p.defaultID)
	}
	return ids, nil
}

func (p *categoryProvisioner) lookup(displayName, slug string) (*models.Category, error) {
	for i := range p.existing {
		if p.existing[i].Slug == slug {
			return &p.existing[i], nil
		}
	}
	return p.create(displayName, slug)
}

func (p *categoryProvisioner) create(displayName, slug string) (*models.Category, error) {
	category := models.Category{
		Name:       displayName,
		Slug:       slug,
		Type:       models.CategoryCustom,
		UserID:     p.sc.UserID,
		LanguageID: p.sc.PairID,
	}
	err := p.db.Create(&category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Concurrent request created it; treat as already existing.
		if err := p.db.Scopes(scope.ForOwner(p.sc)).Where("slug = ?", slug).First(&category).Error; err != nil {
			return nil, fmt.Errorf("failed to refetch category %q: %w", slug, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to create category %q: %w", slug, err)
	}

	p.existing = append(p.existing, category)
	return &p.existing[len(p.existing)-1], nil
}
