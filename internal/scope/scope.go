// Package scope carries the verified request scope: the authenticated user id
// and the resolved canonical language-pair id. Both are placed in Fiber locals
// by the auth and language-pair middleware; downstream components read them
// from here and never re-derive them from raw input.
package scope

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	userIDKey = "user_id"
	pairIDKey = "pair_id"
)

var (
	ErrNoUser = errors.New("no authenticated user in context")
	ErrNoPair = errors.New("no resolved language pair in context")
)

// Scope is the ownership context threaded through every category and word
// operation.
type Scope struct {
	UserID uint
	PairID uint
}

// SetUserID stores the verified user id. Called only by the auth middleware.
func SetUserID(c *fiber.Ctx, id uint) {
	c.Locals(userIDKey, id)
}

// SetPairID stores the canonical language-pair id. Called only by the
// language-pair resolver middleware.
func SetPairID(c *fiber.Ctx, id uint) {
	c.Locals(pairIDKey, id)
}

// UserID extracts the verified user id from context locals.
func UserID(c *fiber.Ctx) (uint, error) {
	if id, ok := c.Locals(userIDKey).(uint); ok && id != 0 {
		return id, nil
	}
	return 0, ErrNoUser
}

// PairID extracts the resolved language-pair id from context locals.
func PairID(c *fiber.Ctx) (uint, error) {
	if id, ok := c.Locals(pairIDKey).(uint); ok && id != 0 {
		return id, nil
	}
	return 0, ErrNoPair
}

// FromCtx builds the full scope; it fails if either resolver has not run.
func FromCtx(c *fiber.Ctx) (Scope, error) {
	userID, err := UserID(c)
	if err != nil {
		return Scope{}, err
	}
	pairID, err := PairID(c)
	if err != nil {
		return Scope{}, err
	}
	return Scope{UserID: userID, PairID: pairID}, nil
}

// ForOwner returns a GORM scope filtering rows to the request's
// (user, language pair).
func ForOwner(sc Scope) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ? AND language_id = ?", sc.UserID, sc.PairID)
	}
}
