package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bookstore-service/internal/auth"
	apperrors "github.com/spec-kit/bookstore-service/pkg/util"
)

// currentUserID resolves the authenticated user's numeric id from the
// request identity. Behind the policy middleware this only fails if a
// handler is mounted on a public route by mistake.
func currentUserID(c *fiber.Ctx) (int64, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return 0, apperrors.NewUnauthorized("authentication required")
	}
	id, err := strconv.ParseInt(identity.Subject, 10, 64)
	if err != nil {
		return 0, apperrors.NewUnauthorized("authentication required")
	}
	return id, nil
}

func paramInt64(c *fiber.Ctx, name string) (int64, error) {
	val, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid "+name, nil)
	}
	return val, nil
}

func queryInt(c *fiber.Ctx, name string, fallback int) int {
	val := c.Query(name)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
