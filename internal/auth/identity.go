package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bookstore-service/internal/domain"
)

const identityKey = "auth_identity"

// Identity is the request-scoped authenticated principal. It is produced
// only from verified claims, lives in the request context, and is discarded
// when the request ends.
type Identity struct {
	Subject string
	Role    domain.Role
}

// IdentityFromClaims derives the canonical identity from verified claims.
// No other code path may fabricate an Identity.
func IdentityFromClaims(claims *Claims) Identity {
	return Identity{Subject: claims.UserID(), Role: claims.Role}
}

// SetIdentity attaches the identity to the current request.
func SetIdentity(c *fiber.Ctx, identity Identity) {
	c.Locals(identityKey, identity)
}

// IdentityFromContext retrieves the authenticated identity, if any.
func IdentityFromContext(c *fiber.Ctx) (Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return Identity{}, false
	}
	identity, ok := val.(Identity)
	return identity, ok
}
