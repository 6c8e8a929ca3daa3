package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Gate classifies every inbound request. It parses the bearer token if one
// is present, verifies it, and attaches the resulting Identity to the
// request. It never rejects: a missing, malformed, or expired token simply
// leaves the request anonymous, and the policy check downstream decides
// whether anonymous access is acceptable for the route. Keeping the gate a
// pure classifier puts the reject decision in exactly one place.
type Gate struct {
	verifier *Verifier
}

// NewGate constructs the gate over the shared verifier.
func NewGate(verifier *Verifier) *Gate {
	return &Gate{verifier: verifier}
}

// Handle runs on every request. A presented bearer token is always verified,
// even on exempt routes; exemption means a bad token cannot block the route,
// not that verification is skipped.
func (g *Gate) Handle(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Next()
	}

	claims, err := g.verifier.Verify(token)
	if err != nil {
		// Invalid or expired: proceed anonymous, policy will reject
		// if the route requires identity.
		return c.Next()
	}
	if claims.Kind != TokenKindAccess {
		// Refresh tokens authenticate nothing but the refresh endpoint,
		// where they arrive in the body.
		return c.Next()
	}

	SetIdentity(c, IdentityFromClaims(claims))
	return c.Next()
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
