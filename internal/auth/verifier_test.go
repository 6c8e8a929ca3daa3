package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bookstore-service/internal/domain"
)

func newTestVerifier(t *testing.T) (*Codec, *Issuer, *Verifier) {
	t.Helper()
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)
	return codec, NewIssuer(codec, 30*time.Minute, 24*time.Hour), NewVerifier(codec)
}

func TestVerifier_AcceptsFreshToken(t *testing.T) {
	_, issuer, verifier := newTestVerifier(t)

	token, _, err := issuer.IssueAccessToken("15", domain.RoleUser)
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "15", claims.UserID())
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestVerifier_RejectsExpiredToken(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	issuer := NewIssuer(codec, 30*time.Minute, 24*time.Hour).WithClock(func() time.Time { return past })
	verifier := NewVerifier(codec)

	token, _, err := issuer.IssueAccessToken("15", domain.RoleUser)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifier_ExpiryIsStrict(t *testing.T) {
	// A token is invalid at the exact expiry instant; "now" must be
	// strictly before expiresAt.
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	issued := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	expiry := issued.Add(30 * time.Minute)
	issuer := NewIssuer(codec, 30*time.Minute, 24*time.Hour).WithClock(func() time.Time { return issued })
	token, _, err := issuer.IssueAccessToken("15", domain.RoleUser)
	require.NoError(t, err)

	atExpiry := NewVerifier(codec).WithClock(func() time.Time { return expiry })
	_, err = atExpiry.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	justBefore := NewVerifier(codec).WithClock(func() time.Time { return expiry.Add(-time.Second) })
	_, err = justBefore.Verify(token)
	assert.NoError(t, err)
}

func TestVerifier_SingleCharacterTamperFails(t *testing.T) {
	_, issuer, verifier := newTestVerifier(t)

	token, _, err := issuer.IssueAccessToken("15", domain.RoleAdmin)
	require.NoError(t, err)

	// Skip the final character of each segment: base64url leaves unused
	// bits there, so two encodings can decode to identical bytes.
	skip := map[int]bool{len(token) - 1: true}
	for idx, ch := range token {
		if ch == '.' && idx > 0 {
			skip[idx-1] = true
		}
	}

	for idx := 0; idx < len(token); idx++ {
		if skip[idx] {
			continue
		}
		mutated := flipChar(token, idx)
		if mutated == token {
			continue
		}
		if _, err := verifier.Verify(mutated); err == nil {
			t.Fatalf("tampered token accepted at position %d", idx)
		} else {
			assert.ErrorIs(t, err, ErrTokenInvalid, "position %d", idx)
		}
	}
}

func TestVerifier_RejectsTruncatedAndPaddedTokens(t *testing.T) {
	_, issuer, verifier := newTestVerifier(t)

	token, _, err := issuer.IssueAccessToken("15", domain.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "signature stripped", token: token[:strings.LastIndex(token, ".")+1]},
		{name: "truncated", token: token[:len(token)/2]},
		{name: "appended", token: token + "AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestVerifier_VerifyRefreshRejectsAccessKind(t *testing.T) {
	_, issuer, verifier := newTestVerifier(t)

	access, _, err := issuer.IssueAccessToken("15", domain.RoleUser)
	require.NoError(t, err)
	refresh, _, err := issuer.IssueRefreshToken("15", domain.RoleUser)
	require.NoError(t, err)

	_, err = verifier.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	claims, err := verifier.VerifyRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenKindRefresh, claims.Kind)
}

func flipChar(s string, idx int) string {
	b := []byte(s)
	if b[idx] == 'a' {
		b[idx] = 'b'
	} else {
		b[idx] = 'a'
	}
	return string(b)
}
