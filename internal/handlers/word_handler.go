package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mkweon/wordvault-backend/internal/dto"
	"github.com/mkweon/wordvault-backend/internal/models"
	"github.com/mkweon/wordvault-backend/internal/scope"
	"github.com/mkweon/wordvault-backend/internal/services"
	"github.com/mkweon/wordvault-backend/internal/validation"
)

type WordHandler struct {
	wordService     *services.WordService
	categoryService *services.CategoryService
}

func NewWordHandler(wordService *services.WordService, categoryService *services.CategoryService) *WordHandler {
	return &WordHandler{wordService: wordService, categoryService: categoryService}
}

// Add handles POST /languages/:pair/words. A brand-new word answers 201, a
// merge into an existing word answers 200.
func (h *WordHandler) Add(c *fiber.Ctx) error {
	sc, err := scope.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "You must be logged in to access that."})
	}

	entry, errs := parseWordEntry(c)
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	word, created, err := h.wordService.AddWord(sc, entry)
	if err != nil {
		return mapCategoryErr(c, sc, err)
	}
	return respondWord(c, word, created)
}

// AddToCategory handles POST /languages/:pair/categories/:categoryId/words.
// The addressed category goes through the full access chain and is included
// in the word's association set.
func (h *WordHandler) AddToCategory(c *fiber.Ctx) error {
	sc, categoryID, ok := categoryScope(c)
	if !ok {
		return nil
	}

	category, err := h.categoryService.Get(sc, categoryID)
	if err != nil {
		return mapCategoryErr(c, sc, err)
	}

	entry, errs := parseWordEntry(c)
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	word, created, err := h.wordService.AddWord(sc, entry, category.ID)
	if err != nil {
		return mapCategoryErr(c, sc, err)
	}
	return respondWord(c, word, created)
}

// Bulk handles POST /languages/:pair/words/bulk. Entries are independent:
// the response is an aggregate with per-item failures, never an abort.
func (h *WordHandler) Bulk(c *fiber.Ctx) error {
	sc, err := scope.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "You must be logged in to access that."})
	}

	var req dto.BulkWordsRequest
	if err := c.BodyParser(&req); err != nil || req.Words == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": []validation.FieldError{
			{Field: "words", Message: "Words must be an array"},
		}})
	}

	if errs := validation.Words(req.Words); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	report, err := h.wordService.BulkAdd(sc, req.Words)
	if err != nil {
		return mapCategoryErr(c, sc, err)
	}

	return c.JSON(fiber.Map{
		"message": "Bulk word ingestion complete",
		"created": report.Created,
		"merged":  report.Merged,
		"failed":  report.Failed,
	})
}

func parseWordEntry(c *fiber.Ctx) (dto.WordEntry, []validation.FieldError) {
	var entry dto.WordEntry
	if err := c.BodyParser(&entry); err != nil {
		return entry, []validation.FieldError{{Field: "body", Message: "Invalid request body"}}
	}
	errs := validation.WordEntry(&entry, "")
	return entry, errs
}

func respondWord(c *fiber.Ctx, word *models.Word, created bool) error {
	resp := dto.WordResponse{ID: word.ID, L1Word: word.L1Word, L2Word: word.L2Word, Example: word.Example}
	if created {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "New word successfully added",
			"word":    resp,
		})
	}
	return c.JSON(fiber.Map{
		"message": "Word already existed; categories merged",
		"word":    resp,
	})
}
