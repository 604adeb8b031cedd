package middleware

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mkweon/wordvault-backend/internal/dto"
	"github.com/mkweon/wordvault-backend/internal/models"
	"github.com/mkweon/wordvault-backend/internal/scope"
	"gorm.io/gorm"
)

// ResolveLanguagePair turns the :pair path segment into a canonical language
// pair id in the request scope. The segment is either a numeric pair id or a
// slug like "en-kr". Downstream components trust the resolved id and never
// re-validate it against user input.
func ResolveLanguagePair(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("pair")

		var pair models.Language
		var err error
		if id, convErr := strconv.Atoi(raw); convErr == nil {
			if id <= 0 {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Error: "Either language pair is missing or invalid",
				})
			}
			err = db.First(&pair, "id = ?", id).Error
		} else {
			parts := strings.SplitN(strings.ToUpper(raw), "-", 2)
			if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Error: "Missing languages",
				})
			}
			err = db.First(&pair, "l1 = ? AND l2 = ?", parts[0], parts[1]).Error
		}

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Error: "Language pair does not exist",
				})
			}
			return fiber.ErrInternalServerError
		}

		scope.SetPairID(c, pair.ID)
		return c.Next()
	}
}
