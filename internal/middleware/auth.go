package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mkweon/wordvault-backend/internal/config"
	"github.com/mkweon/wordvault-backend/internal/dto"
	"github.com/mkweon/wordvault-backend/internal/scope"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// RequireUser resolves the verified numeric user id from the JWT sub claim
// into the request scope. Runs after JWTProtected; everything downstream
// reads the id through scope and never re-derives it.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return unauthorized(c)
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(c)
		}
		// Numeric JSON claims decode as float64.
		sub, ok := claims["sub"].(float64)
		if !ok || sub <= 0 {
			return unauthorized(c)
		}
		scope.SetUserID(c, uint(sub))
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: "You must be logged in to access that.",
	})
}
