package services_test

import (
	"testing"

	"github.com/mkweon/wordvault-backend/internal/dto"
	"github.com/mkweon/wordvault-backend/internal/models"
	"github.com/mkweon/wordvault-backend/internal/scope"
	"github.com/mkweon/wordvault-backend/internal/services"
	"github.com/mkweon/wordvault-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func wordCategoryNames(t *testing.T, db *gorm.DB, wordID uint) []string {
	t.Helper()
	var names []string
	err := db.Model(&models.Category{}).
		Joins("JOIN category_words ON category_words.category_id = categories.id").
		Where("category_words.word_id = ?", wordID).
		Order("categories.id").
		Pluck("categories.name", &names).Error
	require.NoError(t, err)
	return names
}

func TestAddWordCreatesWithDefaultCategory(t *testing.T) {
	db := testutil.OpenDB(t)
	sc, _ := activePair(t, db, "ron@hogwarts.com", "EN", "KR")
	svc := services.NewWordService(db)

	word, created, err := svc.AddWord(sc, dto.WordEntry{
		L1Word: "tree", L2Word: "나무", Categories: []string{"nature"},
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "tree", word.L1Word)
	assert.Nil(t, word.Example)

	assert.ElementsMatch(t, []string{"My Words", "Nature"}, wordCategoryNames(t, db, word.ID))
}

func TestAddWordProvisionsNamedCategories(t *testing.T) {
	db := testutil.OpenDB(t)
	sc, _ := activePair(t, db, "ron@hogwarts.com", "EN", "KR")

	word, _, err := services.NewWordService(db).AddWord(sc, dto.WordEntry{
		L1Word: "winter", L2Word: "겨울", Categories: []string{"seasons", "winter words"},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{"My Words", "Seasons", "Winter Words"},
		wordCategoryNames(t, db, word.ID))

	// Provisioned folders are regular CUSTOM categories.
	var seasons models.Category
	require.NoError(t, db.First(&seasons, "slug = ?", "seasons").Error)
	assert.Equal(t, models.CategoryCustom, seasons.Type)
	assert.Equal(t, "Seasons", seasons.Name)
}

func TestAddWordMergesOnSameTargetTerm(t *testing.T) {
	db := testutil.OpenDB(t)
	sc, _ := activePair(t, db, "ron@hogwarts.com", "EN", "KR")
	svc := services.NewWordService(db)

	first, created, err := svc.AddWord(sc, dto.WordEntry{
		L1Word: "tree", L2Word: "나무", Categories: []string{"nature"},
	})
	require.NoError(t, err)
	require.True(t, created)

	// Same target term again, different source gloss and folders. The
	// existing word gains the missing associations and keeps its fields.
	second, created, err := svc.AddWord(sc, dto.WordEntry{
		L1Word: "arbor", L2Word: "나무", Categories: []string{"winter"},
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "tree", second.L1Word)

	assert.ElementsMatch(t,
		[]string{"My Words", "Nature", "Winter"},
		wordCategoryNames(t, db, first.ID))

	var count int64
	require.NoError(t, db.Model(&models.Word{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddWordIdentityIsTargetTermOnly(t *testing.T) {
	db := testutil.OpenDB(t)
	sc, _ := activePair(t, db, "ron@hogwarts.com", "EN", "KR")
	svc := services.NewWordService(db)

	// Two distinct target terms sharing one translation are two words.
	_, created, err := svc.AddWord(sc, dto.WordEntry{L1Word: "tree", L2Word: "나무"})
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = svc.AddWord(sc, dto.WordEntry{L1Word: "tree", L2Word: "수목"})
	require.NoError(t, err)
	assert.True(t, created)

	var count int64
	require.NoError(t, db.Model(&models.Word{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestAddWordScopedPerPair(t *testing.T) {
	db := testutil.OpenDB(t)
	sc, _ := activePair(t, db, "ron@hogwarts.com", "EN", "KR")
	svc := services.NewWordService(db)

	testutil.SeedLanguage(t, db, "EN", "JA")
	_, pair, err := services.NewLanguageService(db).Activate(sc.UserID, "EN", "JA")
	require.NoError(t, err)
	other := scope.Scope{UserID: sc.UserID, PairID: pair.ID}

	_, created, err := svc.AddWord(sc, dto.WordEntry{L1Word: "tree", L2Word: "나무"})
	require.NoError(t, err)
	require.True(t, created)

	// The same spelling under another pair is a separate word.
	_, created, err = svc.AddWord(other, dto.WordEntry{L1Word: "tree", L2Word: "나무"})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestAddWordRequiresDefaultCategory(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "ron@hogwarts.com")
	pair := testutil.SeedLanguage(t, db, "EN", "KR")

	// Pair never activated, so no DEFAULT category exists.
	sc := scope.Scope{UserID: user.ID, PairID: pair.ID}
	_, _, err := services.NewWordService(db).AddWord(sc, dto.WordEntry{L1Word: "tree", L2Word: "나무"})
	assert.ErrorIs(t, err, services.ErrDefaultCategoryMissing)
}

func TestAddWordWithExtraCategory(t *testing.T) {
	db := testutil.OpenDB(t)
	sc, _ := activePair(t, db, "ron@hogwarts.com", "EN", "KR")
	categorySvc := services.NewCategoryService(db)

	nature, err := categorySvc.Create(sc, "Nature")
	require.NoError(t, err)

	word, _, err := services.NewWordService(db).AddWord(sc, dto.WordEntry{
		L1Word: "tree", L2Word: "나무", Categories: []string{"forest"},
	}, nature.ID)
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{"My Words", "Forest", "Nature"},
		wordCategoryNames(t, db, word.ID))
}

func TestAddWordStoresExample(t *testing.T) {
	db := testutil.OpenDB(t)
	sc, _ := activePair(t, db, "ron@hogwarts.com", "EN", "KR")
	svc := services.NewWordService(db)

	word, _, err := svc.AddWord(sc, dto.WordEntry{
		L1Word: "tree", L2Word: "나무", Example: "나무가 큽니다.",
	})
	require.NoError(t, err)
	require.NotNil(t, word.Example)
	assert.Equal(t, "나무가 큽니다.", *word.Example)
}

func TestBulkAddCounts(t *testing.T) {
	db := testutil.OpenDB(t)
	sc, _ := activePair(t, db, "ron@hogwarts.com", "EN", "KR")
	svc := services.NewWordService(db)

	report, err := svc.BulkAdd(sc, []dto.WordEntry{
		{L1Word: "tree", L2Word: "나무", Categories: []string{"nature"}},
		{L1Word: "winter", L2Word: "겨울", Categories: []string{"seasons"}},
		{L1Word: "arbor", L2Word: "나무", Categories: []string{"seasons"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 1, report.Merged)
	assert.NotNil(t, report.Failed)
	assert.Empty(t, report.Failed)
}

func TestBulkAddSharesCategorySnapshot(t *testing.T) {
	db := testutil.OpenDB(t)
	sc, _ := activePair(t, db, "ron@hogwarts.com", "EN", "KR")
	svc := services.NewWordService(db)

	// Both entries introduce the same new folder name. One folder results.
	_, err := svc.BulkAdd(sc, []dto.WordEntry{
		{L1Word: "snow", L2Word: "눈", Categories: []string{"winter words"}},
		{L1Word: "ice", L2Word: "얼음", Categories: []string{"Winter Words"}},
	})
	require.NoError(t, err)

	var count int64
	err = db.Model(&models.Category{}).Where("slug = ?", "winter-words").Count(&count).Error
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
