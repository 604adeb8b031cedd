package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/mkweon/wordvault-backend/internal/dto"
	"github.com/mkweon/wordvault-backend/internal/services"
	"github.com/mkweon/wordvault-backend/internal/validation"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	if errs := validation.Signup(&req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	if err := h.authService.Register(&req); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": []validation.FieldError{
				{Field: "email", Message: "Email is already in use"},
			}})
		}
		slog.Error("signup failed", "error", err)
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "New user signup successful"})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	if errs := validation.Login(&req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		// The account's absence passes field validation but is still a bad
		// request, and the body must not reveal which address exists.
		if errors.Is(err, services.ErrNoAccount) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Bad request"})
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid email or password"})
		}
		slog.Error("login failed", "error", err)
		return fiber.ErrInternalServerError
	}

	return c.JSON(resp)
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		slog.Error("token refresh failed", "error", err)
		return fiber.ErrInternalServerError
	}

	return c.JSON(resp)
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	if err := h.authService.Logout(&req); err != nil {
		slog.Error("logout failed", "error", err)
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
