package auth

import (
	"time"

	"github.com/spec-kit/bookstore-service/internal/domain"
)

// Issuer mints access/refresh token pairs. It stores nothing: any token it
// issues stays valid until its own expiry, with no server-side way to revoke
// it earlier.
type Issuer struct {
	codec      *Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewIssuer builds an issuer with distinct access and refresh lifetimes.
func NewIssuer(codec *Codec, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// IssueAccessToken signs a short-lived token for request authentication.
func (i *Issuer) IssueAccessToken(subject string, role domain.Role) (string, time.Time, error) {
	return i.issue(subject, role, TokenKindAccess, i.accessTTL)
}

// IssueRefreshToken signs a long-lived token redeemable for new access tokens.
func (i *Issuer) IssueRefreshToken(subject string, role domain.Role) (string, time.Time, error) {
	return i.issue(subject, role, TokenKindRefresh, i.refreshTTL)
}

func (i *Issuer) issue(subject string, role domain.Role, kind TokenKind, ttl time.Duration) (string, time.Time, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(ttl)

	token, err := i.codec.Encode(subject, role, kind, issuedAt, expiresAt)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}
