package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mkweon/wordvault-backend/internal/config"
	"github.com/mkweon/wordvault-backend/internal/handlers"
	"github.com/mkweon/wordvault-backend/internal/routes"
	"github.com/mkweon/wordvault-backend/internal/services"
	"github.com/mkweon/wordvault-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := testutil.OpenDB(t)
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}

	authService := services.NewAuthService(db, cfg)
	languageService := services.NewLanguageService(db)
	categoryService := services.NewCategoryService(db)
	wordService := services.NewWordService(db)

	app := fiber.New()
	routes.Setup(app, cfg, db,
		handlers.NewAuthHandler(authService),
		handlers.NewHealthHandler(db),
		handlers.NewLanguageHandler(languageService),
		handlers.NewCategoryHandler(categoryService),
		handlers.NewWordHandler(wordService, categoryService),
	)
	return app, db
}

// request performs one JSON round trip and decodes the response body.
func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	return resp.StatusCode, decoded
}

// signupAndLogin registers a fresh user and returns a bearer token.
func signupAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	status, _ := request(t, app, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"firstName":       "ron",
		"lastName":        "weasley",
		"email":           email,
		"password":        "Expelliarmus1!",
		"confirmPassword": "Expelliarmus1!",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := request(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    email,
		"password": "Expelliarmus1!",
	})
	require.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func categoryID(t *testing.T, body map[string]interface{}) uint {
	t.Helper()
	category, ok := body["category"].(map[string]interface{})
	require.True(t, ok, "response has no category object: %v", body)
	id, ok := category["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	status, body := request(t, app, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestLanguageRoutesRequireAuth(t *testing.T) {
	app, _ := newTestApp(t)
	status, _ := request(t, app, http.MethodGet, "/api/languages", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestVocabularyLifecycle(t *testing.T) {
	app, db := newTestApp(t)
	testutil.SeedLanguage(t, db, "EN", "KR")
	testutil.SeedLanguage(t, db, "KR", "EN")
	token := signupAndLogin(t, app, "ron@hogwarts.com")

	// Available pairs.
	status, body := request(t, app, http.MethodGet, "/api/languages", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["codes"], "EN-KR")

	// Activate EN-KR; activation creates the default folder.
	status, body = request(t, app, http.MethodPost, "/api/languages", token,
		fiber.Map{"langOne": "en", "langTwo": "kr"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "New EN to KR successfully added", body["message"])
	defaultID := categoryID(t, body)

	// Re-activation is a client error.
	status, _ = request(t, app, http.MethodPost, "/api/languages", token,
		fiber.Map{"langOne": "EN", "langTwo": "KR"})
	assert.Equal(t, http.StatusBadRequest, status)

	// A custom folder.
	status, body = request(t, app, http.MethodPost, "/api/languages/en-kr/categories", token,
		fiber.Map{"category": "nature"})
	require.Equal(t, http.StatusOK, status)
	natureID := categoryID(t, body)

	// First ingestion of a word.
	status, body = request(t, app, http.MethodPost, "/api/languages/en-kr/words", token, fiber.Map{
		"l1Word": "tree", "l2Word": "나무", "categories": []string{"Nature"},
	})
	require.Equal(t, http.StatusCreated, status)
	word, ok := body["word"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "나무", word["l2Word"])

	// Same target term again: a merge, not a duplicate.
	status, _ = request(t, app, http.MethodPost, "/api/languages/en-kr/words", token, fiber.Map{
		"l1Word": "tree", "l2Word": "나무", "categories": []string{"winter"},
	})
	assert.Equal(t, http.StatusOK, status)

	// Deleting the custom folder keeps the word in the default one.
	status, _ = request(t, app, http.MethodDelete,
		fmt.Sprintf("/api/languages/en-kr/categories/%d", natureID), token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = request(t, app, http.MethodGet,
		fmt.Sprintf("/api/languages/en-kr/categories/%d/words", defaultID), token, nil)
	require.Equal(t, http.StatusOK, status)
	words, ok := body["words"].([]interface{})
	require.True(t, ok)
	assert.Len(t, words, 1)

	// Activated pairs.
	status, body = request(t, app, http.MethodGet, "/api/languages/mine", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["languageIds"], 1)
}

func TestPairSegmentHandling(t *testing.T) {
	app, db := newTestApp(t)
	testutil.SeedLanguage(t, db, "EN", "KR")
	token := signupAndLogin(t, app, "ron@hogwarts.com")

	t.Run("malformed slug", func(t *testing.T) {
		status, _ := request(t, app, http.MethodGet, "/api/languages/enkr/categories", token, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("unknown pair", func(t *testing.T) {
		status, _ := request(t, app, http.MethodGet, "/api/languages/en-ja/categories", token, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("numeric id works too", func(t *testing.T) {
		status, _ := request(t, app, http.MethodPost, "/api/languages", token,
			fiber.Map{"langOne": "EN", "langTwo": "KR"})
		require.Equal(t, http.StatusOK, status)

		status, _ = request(t, app, http.MethodGet, "/api/languages/1/categories", token, nil)
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestCategoryAccessStatusCodes(t *testing.T) {
	app, db := newTestApp(t)
	testutil.SeedLanguage(t, db, "EN", "KR")
	testutil.SeedLanguage(t, db, "KR", "EN")

	ron := signupAndLogin(t, app, "ron@hogwarts.com")
	hermione := signupAndLogin(t, app, "hermione@hogwarts.com")

	status, body := request(t, app, http.MethodPost, "/api/languages", ron,
		fiber.Map{"langOne": "EN", "langTwo": "KR"})
	require.Equal(t, http.StatusOK, status)
	defaultID := categoryID(t, body)

	status, _ = request(t, app, http.MethodPost, "/api/languages", ron,
		fiber.Map{"langOne": "KR", "langTwo": "EN"})
	require.Equal(t, http.StatusOK, status)

	status, _ = request(t, app, http.MethodPost, "/api/languages", hermione,
		fiber.Map{"langOne": "EN", "langTwo": "KR"})
	require.Equal(t, http.StatusOK, status)

	status, body = request(t, app, http.MethodPost, "/api/languages/en-kr/categories", ron,
		fiber.Map{"category": "Nature"})
	require.Equal(t, http.StatusOK, status)
	natureID := categoryID(t, body)

	t.Run("non-numeric category id is 400", func(t *testing.T) {
		status, body := request(t, app, http.MethodGet, "/api/languages/en-kr/categories/abc", ron, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Category id must be provided", body["error"])
	})

	t.Run("zero category id is 400", func(t *testing.T) {
		status, _ := request(t, app, http.MethodDelete, "/api/languages/en-kr/categories/0", ron, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("absent category is 404", func(t *testing.T) {
		status, _ := request(t, app, http.MethodGet, "/api/languages/en-kr/categories/9999", ron, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("someone else's category is 403", func(t *testing.T) {
		path := fmt.Sprintf("/api/languages/en-kr/categories/%d", natureID)
		status, _ := request(t, app, http.MethodGet, path, hermione, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("wrong pair is 400", func(t *testing.T) {
		path := fmt.Sprintf("/api/languages/kr-en/categories/%d", natureID)
		status, _ := request(t, app, http.MethodGet, path, ron, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("default rename is 403", func(t *testing.T) {
		path := fmt.Sprintf("/api/languages/en-kr/categories/%d", defaultID)
		status, _ := request(t, app, http.MethodPatch, path, ron, fiber.Map{"category": "Mine"})
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("default delete is 403", func(t *testing.T) {
		path := fmt.Sprintf("/api/languages/en-kr/categories/%d", defaultID)
		status, _ := request(t, app, http.MethodDelete, path, ron, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("duplicate name is 400", func(t *testing.T) {
		status, _ := request(t, app, http.MethodPost, "/api/languages/en-kr/categories", ron,
			fiber.Map{"category": "nature"})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestBulkWords(t *testing.T) {
	app, db := newTestApp(t)
	testutil.SeedLanguage(t, db, "EN", "KR")
	token := signupAndLogin(t, app, "ron@hogwarts.com")

	status, _ := request(t, app, http.MethodPost, "/api/languages", token,
		fiber.Map{"langOne": "EN", "langTwo": "KR"})
	require.Equal(t, http.StatusOK, status)

	t.Run("missing words array is 400", func(t *testing.T) {
		status, _ := request(t, app, http.MethodPost, "/api/languages/en-kr/words/bulk", token, fiber.Map{})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("field errors name the offending entry", func(t *testing.T) {
		status, body := request(t, app, http.MethodPost, "/api/languages/en-kr/words/bulk", token, fiber.Map{
			"words": []fiber.Map{
				{"l1Word": "tree", "l2Word": "나무"},
				{"l1Word": "", "l2Word": "겨울"},
			},
		})
		require.Equal(t, http.StatusBadRequest, status)
		errs, ok := body["errors"].([]interface{})
		require.True(t, ok)
		require.Len(t, errs, 1)
		first, ok := errs[0].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "words[1].l1Word", first["field"])
	})

	t.Run("aggregate report", func(t *testing.T) {
		status, body := request(t, app, http.MethodPost, "/api/languages/en-kr/words/bulk", token, fiber.Map{
			"words": []fiber.Map{
				{"l1Word": "tree", "l2Word": "나무", "categories": []string{"nature"}},
				{"l1Word": "winter", "l2Word": "겨울"},
				{"l1Word": "arbor", "l2Word": "나무"},
			},
		})
		require.Equal(t, http.StatusOK, status)
		assert.EqualValues(t, 2, body["created"])
		assert.EqualValues(t, 1, body["merged"])
		assert.Empty(t, body["failed"])
	})
}

func TestAddWordViaCategoryPath(t *testing.T) {
	app, db := newTestApp(t)
	testutil.SeedLanguage(t, db, "EN", "KR")
	token := signupAndLogin(t, app, "ron@hogwarts.com")

	status, _ := request(t, app, http.MethodPost, "/api/languages", token,
		fiber.Map{"langOne": "EN", "langTwo": "KR"})
	require.Equal(t, http.StatusOK, status)

	status, body := request(t, app, http.MethodPost, "/api/languages/en-kr/categories", token,
		fiber.Map{"category": "Nature"})
	require.Equal(t, http.StatusOK, status)
	natureID := categoryID(t, body)

	wordsPath := fmt.Sprintf("/api/languages/en-kr/categories/%d/words", natureID)
	status, _ = request(t, app, http.MethodPost, wordsPath, token,
		fiber.Map{"l1Word": "tree", "l2Word": "나무"})
	require.Equal(t, http.StatusCreated, status)

	status, body = request(t, app, http.MethodGet, wordsPath, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["words"], 1)
}
