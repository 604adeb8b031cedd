package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mkweon/wordvault-backend/internal/dto"
	"github.com/mkweon/wordvault-backend/internal/models"
	"github.com/mkweon/wordvault-backend/internal/scope"
	"github.com/mkweon/wordvault-backend/internal/services"
	"github.com/mkweon/wordvault-backend/internal/validation"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List handles GET /languages/:pair/categories.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	sc, err := scope.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "You must be logged in to access that."})
	}

	categories, err := h.categoryService.List(sc)
	if err != nil {
		slog.Error("category list failed", "user_id", sc.UserID, "error", err)
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"message":    "Successfully retrieved categories",
		"categories": categoryProjections(categories),
	})
}

// Get handles GET /languages/:pair/categories/:categoryId.
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	sc, categoryID, ok := categoryScope(c)
	if !ok {
		return nil
	}

	category, err := h.categoryService.Get(sc, categoryID)
	if err != nil {
		return mapCategoryErr(c, sc, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Successfully retrieved category",
		"category": projectCategory(*category),
	})
}

// Create handles POST /languages/:pair/categories.
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	sc, err := scope.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "You must be logged in to access that."})
	}

	name, errs := parseCategoryName(c)
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	category, err := h.categoryService.Create(sc, name)
	if err != nil {
		return mapCategoryErr(c, sc, err)
	}

	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("New category %q successfully created", category.Name),
		"category": projectCategory(*category),
	})
}

// Rename handles PATCH /languages/:pair/categories/:categoryId. The name and
// slug change together; DEFAULT categories are rename-immune.
func (h *CategoryHandler) Rename(c *fiber.Ctx) error {
	sc, categoryID, ok := categoryScope(c)
	if !ok {
		return nil
	}

	name, errs := parseCategoryName(c)
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	category, err := h.categoryService.Rename(sc, categoryID, name)
	if err != nil {
		return mapCategoryErr(c, sc, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Category successfully renamed",
		"category": projectCategory(*category),
	})
}

// Delete handles DELETE /languages/:pair/categories/:categoryId. Words keep
// existing under their other categories.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	sc, categoryID, ok := categoryScope(c)
	if !ok {
		return nil
	}

	if err := h.categoryService.Delete(sc, categoryID); err != nil {
		return mapCategoryErr(c, sc, err)
	}

	return c.JSON(fiber.Map{"message": "Category successfully deleted"})
}

// Words handles GET /languages/:pair/categories/:categoryId/words.
func (h *CategoryHandler) Words(c *fiber.Ctx) error {
	sc, categoryID, ok := categoryScope(c)
	if !ok {
		return nil
	}

	category, words, err := h.categoryService.Words(sc, categoryID)
	if err != nil {
		return mapCategoryErr(c, sc, err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Words successfully retrieved for %s", category.Name),
		"words":   wordProjections(words),
	})
}

// categoryScope resolves the request scope and the :categoryId path segment.
// When either is invalid it writes the error response itself and reports
// false; the caller returns without touching the database.
func categoryScope(c *fiber.Ctx) (scope.Scope, uint, bool) {
	sc, err := scope.FromCtx(c)
	if err != nil {
		c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "You must be logged in to access that."})
		return scope.Scope{}, 0, false
	}

	id, err := strconv.Atoi(c.Params("categoryId"))
	if err != nil || id <= 0 {
		c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Category id must be provided"})
		return scope.Scope{}, 0, false
	}
	return sc, uint(id), true
}

func parseCategoryName(c *fiber.Ctx) (string, []validation.FieldError) {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return "", []validation.FieldError{{Field: "category", Message: "Invalid request body"}}
	}
	return validation.CategoryName(req.Category)
}

// mapCategoryErr translates category service sentinels to the status
// contract: absent 404, not owned 403, wrong pair 400, protected default 403,
// duplicate name 400 validation error.
func mapCategoryErr(c *fiber.Ctx, sc scope.Scope, err error) error {
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Category doesn't exist"})
	case errors.Is(err, services.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "Unauthorized. You don't have access to that"})
	case errors.Is(err, services.ErrPairMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Category does not belong to that language pair"})
	case errors.Is(err, services.ErrDefaultImmutable):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "Default categories cannot be changed"})
	case errors.Is(err, services.ErrNameTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": []validation.FieldError{
			{Field: "category", Message: "You already have a category with this name"},
		}})
	case errors.Is(err, services.ErrDefaultCategoryMissing):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Default category not found"})
	default:
		slog.Error("category operation failed", "user_id", sc.UserID, "pair_id", sc.PairID, "error", err)
		return fiber.ErrInternalServerError
	}
}

func projectCategory(category models.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: category.ID, Name: category.Name, Slug: category.Slug}
}

func categoryProjections(categories []models.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, len(categories))
	for i, category := range categories {
		out[i] = projectCategory(category)
	}
	return out
}

func wordProjections(words []models.Word) []dto.WordResponse {
	out := make([]dto.WordResponse, len(words))
	for i, w := range words {
		out[i] = dto.WordResponse{ID: w.ID, L1Word: w.L1Word, L2Word: w.L2Word, Example: w.Example}
	}
	return out
}
