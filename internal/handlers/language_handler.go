package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/mkweon/wordvault-backend/internal/dto"
	"github.com/mkweon/wordvault-backend/internal/scope"
	"github.com/mkweon/wordvault-backend/internal/services"
	"github.com/mkweon/wordvault-backend/internal/validation"
)

type LanguageHandler struct {
	languageService *services.LanguageService
}

func NewLanguageHandler(languageService *services.LanguageService) *LanguageHandler {
	return &LanguageHandler{languageService: languageService}
}

// Codes handles GET /languages — every available pair as "EN-KR" codes.
func (h *LanguageHandler) Codes(c *fiber.Ctx) error {
	codes, err := h.languageService.Codes()
	if err != nil {
		if errors.Is(err, services.ErrNoPairsAvailable) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "No language pairs are available yet"})
		}
		slog.Error("language codes lookup failed", "error", err)
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"message": "Successfully fetched available language codes",
		"codes":   codes,
	})
}

// Activate handles POST /languages — sets up a pair for the current user by
// creating its DEFAULT category.
func (h *LanguageHandler) Activate(c *fiber.Ctx) error {
	userID, err := scope.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "You must be logged in to access that."})
	}

	var req dto.ActivateLanguageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	if errs := validation.LanguagePair(&req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	category, pair, err := h.languageService.Activate(userID, req.LangOne, req.LangTwo)
	if err != nil {
		if errors.Is(err, services.ErrPairUnavailable) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Sorry, that language pair is unavailable at this time."})
		}
		if errors.Is(err, services.ErrPairAlreadyActive) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "That language pair is already set up."})
		}
		slog.Error("language activation failed", "user_id", userID, "error", err)
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("New %s to %s successfully added", pair.L1, pair.L2),
		"category": dto.CategoryResponse{
			ID:   category.ID,
			Name: category.Name,
			Slug: category.Slug,
		},
	})
}

// Mine handles GET /languages/mine — the language ids the user has activated.
func (h *LanguageHandler) Mine(c *fiber.Ctx) error {
	userID, err := scope.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "You must be logged in to access that."})
	}

	ids, err := h.languageService.UserLanguageIDs(userID)
	if err != nil {
		if errors.Is(err, services.ErrNoUserLanguages) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "No language pairs exist for that user"})
		}
		slog.Error("user languages lookup failed", "user_id", userID, "error", err)
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"message":     "Successfully retrieved user's languageIds",
		"languageIds": ids,
	})
}
