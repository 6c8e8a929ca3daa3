package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bookstore-service/internal/domain"
)

func TestIssuer_PairHasDistinctExpiries(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	issuer := NewIssuer(codec, 30*time.Minute, 14*24*time.Hour).WithClock(func() time.Time { return now })

	access, accessExp, err := issuer.IssueAccessToken("1", domain.RoleUser)
	require.NoError(t, err)
	refresh, refreshExp, err := issuer.IssueRefreshToken("1", domain.RoleUser)
	require.NoError(t, err)

	assert.NotEqual(t, access, refresh)
	assert.Equal(t, now.Add(30*time.Minute), accessExp)
	assert.Equal(t, now.Add(14*24*time.Hour), refreshExp)
	assert.True(t, accessExp.Before(refreshExp))
}

func TestIssuer_TokensCarryKindAndIdentity(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)
	issuer := NewIssuer(codec, time.Minute, time.Hour)

	access, _, err := issuer.IssueAccessToken("9", domain.RoleAdmin)
	require.NoError(t, err)
	refresh, _, err := issuer.IssueRefreshToken("9", domain.RoleAdmin)
	require.NoError(t, err)

	accessClaims, err := codec.Decode(access)
	require.NoError(t, err)
	refreshClaims, err := codec.Decode(refresh)
	require.NoError(t, err)

	assert.Equal(t, TokenKindAccess, accessClaims.Kind)
	assert.Equal(t, TokenKindRefresh, refreshClaims.Kind)

	assert.Equal(t, "9", accessClaims.UserID())
	assert.Equal(t, domain.RoleAdmin, accessClaims.Role)
	assert.Equal(t, accessClaims.UserID(), refreshClaims.UserID())
	assert.Equal(t, accessClaims.Role, refreshClaims.Role)
}
