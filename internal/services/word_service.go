package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mkweon/wordvault-backend/internal/dto"
	"github.com/mkweon/wordvault-backend/internal/models"
	"github.com/mkweon/wordvault-backend/internal/scope"
	"gorm.io/gorm"
)

type WordService struct {
	db *gorm.DB
}

func NewWordService(db *gorm.DB) *WordService {
	return &WordService{db: db}
}

// BulkFailure reports one bulk entry that could not be persisted. Duplicates
// are merges, never failures.
type BulkFailure struct {
	Index  int    `json:"index"`
	L2Word string `json:"l2Word"`
	Error  string `json:"error"`
}

// BulkReport aggregates a bulk ingestion: every entry is counted exactly once
// as created, merged, or failed.
type BulkReport struct {
	Created int           `json:"created"`
	Merged  int           `json:"merged"`
	Failed  []BulkFailure `json:"failed"`
}

// AddWord ingests a single word. The categories named in the entry are
// resolved (and created on demand) against a fresh snapshot, with the DEFAULT
// category and any extraCategoryIDs always included. Returns the word and
// whether it was newly created; an existing word with the same
// (user, pair, l2Word) gains missing associations instead.
func (s *WordService) AddWord(sc scope.Scope, entry dto.WordEntry, extraCategoryIDs ...uint) (*models.Word, bool, error) {
	prov, err := newCategoryProvisioner(s.db, sc)
	if err != nil {
		return nil, false, err
	}
	categoryIDs, err := prov.Resolve(entry.Categories)
	if err != nil {
		return nil, false, err
	}
	categoryIDs = appendMissing(categoryIDs, extraCategoryIDs)

	return s.ingest(sc, entry, categoryIDs)
}

// BulkAdd ingests entries in input order. One category snapshot is shared by
// the whole batch, so a new category name introduced twice is created once.
// Entries are independent units of work: a failure never rolls back or stops
// sibling entries.
func (s *WordService) BulkAdd(sc scope.Scope, entries []dto.WordEntry) (*BulkReport, error) {
	prov, err := newCategoryProvisioner(s.db, sc)
	if err != nil {
		return nil, err
	}

	report := &BulkReport{Failed: []BulkFailure{}}
	for i, entry := range entries {
		categoryIDs, err := prov.Resolve(entry.Categories)
		if err == nil {
			_, created, ingestErr := s.ingest(sc, entry, categoryIDs)
			err = ingestErr
			if err == nil {
				if created {
					report.Created++
				} else {
					report.Merged++
				}
				continue
			}
		}
		slog.Error("bulk word ingestion failed",
			"user_id", sc.UserID, "pair_id", sc.PairID, "index", i, "error", err)
		report.Failed = append(report.Failed, BulkFailure{
			Index:  i,
			L2Word: entry.L2Word,
			Error:  err.Error(),
		})
	}
	return report, nil
}

// ingest performs the dedup-or-merge step. The target-language term l2Word is
// the identity key within the scope.
func (s *WordService) ingest(sc scope.Scope, entry dto.WordEntry, categoryIDs []uint) (*models.Word, bool, error) {
	var existing models.Word
	err := s.db.Scopes(scope.ForOwner(sc)).Where("l2_word = ?", entry.L2Word).First(&existing).Error
	if err == nil {
		return s.merge(&existing, categoryIDs)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up word: %w", err)
	}

	word := models.Word{
		L1Word:     entry.L1Word,
		L2Word:     entry.L2Word,
		Example:    nullableExample(entry.Example),
		UserID:     sc.UserID,
		LanguageID: sc.PairID,
		Categories: categoryRefs(categoryIDs),
	}
	// Word and its associations land together or not at all.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Categories.*").Create(&word).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Concurrent ingestion of the same term; merge into the winner.
			if err := s.db.Scopes(scope.ForOwner(sc)).Where("l2_word = ?", entry.L2Word).First(&existing).Error; err != nil {
				return nil, false, fmt.Errorf("failed to refetch word: %w", err)
			}
			return s.merge(&existing, categoryIDs)
		}
		return nil, false, fmt.Errorf("failed to create word: %w", err)
	}
	return &word, true, nil
}

// merge appends the category associations the word is missing. Existing
// associations are never removed; an empty difference is a no-op success.
func (s *WordService) merge(word *models.Word, categoryIDs []uint) (*models.Word, bool, error) {
	var currentIDs []uint
	err := s.db.Table("category_words").Where("word_id = ?", word.ID).
		Pluck("category_id", &currentIDs).Error
	if err != nil {
		return nil, false, fmt.Errorf("failed to load word categories: %w", err)
	}

	missing := make([]uint, 0, len(categoryIDs))
	current := make(map[uint]bool, len(currentIDs))
	for _, id := range currentIDs {
		current[id] = true
	}
	for _, id := range categoryIDs {
		if !current[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return word, false, nil
	}

	refs := categoryRefs(missing)
	assoc := make([]interface{}, len(refs))
	for i := range refs {
		assoc[i] = &refs[i]
	}
	if err := s.db.Model(word).Omit("Categories.*").Association("Categories").Append(assoc...); err != nil {
		return nil, false, fmt.Errorf("failed to merge word categories: %w", err)
	}
	return word, false, nil
}

func appendMissing(ids []uint, extras []uint) []uint {
	present := make(map[uint]bool, len(ids))
	for _, id := range ids {
		present[id] = true
	}
	for _, id := range extras {
		if !present[id] {
			present[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

func categoryRefs(ids []uint) []models.Category {
	refs := make([]models.Category, len(ids))
	for i, id := range ids {
		refs[i] = models.Category{ID: id}
	}
	return refs
}

func nullableExample(example string) *string {
	if example == "" {
		return nil
	}
	return &example
}
