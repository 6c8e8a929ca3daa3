package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/bookstore-service/internal/domain"
)

// MinKeyBytes is the smallest acceptable signing key length.
const MinKeyBytes = 32

// TokenKind separates the two halves of a token pair. Only refresh tokens
// may be exchanged for new access tokens, and only access tokens carry a
// request identity.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

var (
	// ErrTokenInvalid covers signature mismatch and claim-shape problems.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenMalformed covers strings that are not tokens at all.
	ErrTokenMalformed = errors.New("malformed token")
	// ErrTokenExpired is returned for well-signed tokens past their expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Claims describes the signed token payload.
type Claims struct {
	Role domain.Role `json:"role"`
	Kind TokenKind   `json:"kind"`
	jwt.RegisteredClaims
}

// UserID returns the subject ("sub") string, the principal's stable id.
func (c *Claims) UserID() string {
	return c.RegisteredClaims.Subject
}

// Codec encodes and decodes signed claims. It is pure computation over
// already-available bytes; safe for unlimited concurrent use.
type Codec struct {
	key []byte
}

// NewCodec builds a codec, rejecting signing keys below the entropy floor.
// Call it once at startup; a short key is a deployment error, not a
// per-request condition.
func NewCodec(secret string) (*Codec, error) {
	if len(secret) < MinKeyBytes {
		return nil, fmt.Errorf("signing key must be at least %d bytes, got %d", MinKeyBytes, len(secret))
	}
	return &Codec{key: []byte(secret)}, nil
}

// Encode signs the claims with HMAC-SHA256 and returns the compact token string.
func (c *Codec) Encode(subject string, role domain.Role, kind TokenKind, issuedAt, expiresAt time.Time) (string, error) {
	claims := &Claims{
		Role: role,
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.key)
}

// Decode verifies the signature and structure of a token string and returns
// its claims. Expiry is deliberately NOT checked here; the verifier owns that
// step so that signature verification always happens before any claim is
// trusted. No field of the result is meaningful unless Decode returned nil.
func (c *Codec) Decode(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return c.key, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, ErrTokenMalformed
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.RegisteredClaims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
