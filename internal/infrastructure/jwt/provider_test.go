package jwtinfra

import (
	"testing"
	"time"

	"github.com/otp-auth-api/internal/config"
	"github.com/otp-auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := NewProvider(&config.Config{
		JWTSigningKey:   "test-signing-key",
		AccessTokenTTL:  24 * time.Hour,
		RefreshTokenTTL: 168 * time.Hour,
	})
	require.NoError(t, err)
	return p
}

func TestNewProvider_MissingKey(t *testing.T) {
	_, err := NewProvider(&config.Config{})
	assert.Error(t, err)
}

func TestIssuePair_RoundTrip(t *testing.T) {
	p := newTestProvider(t)

	pair, err := p.IssuePair("u1", domain.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	access, err := p.Verify(pair.Access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "u1", access.UserID)
	assert.Equal(t, domain.RoleUser, access.Role)
	assert.Equal(t, TokenTypeAccess, access.TokenType)
	assert.NotEmpty(t, access.ID)

	refresh, err := p.Verify(pair.Refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, "u1", refresh.UserID)
	assert.Equal(t, TokenTypeRefresh, refresh.TokenType)
	assert.NotEmpty(t, refresh.ID)
}

func TestVerify_TokenTypeEnforced(t *testing.T) {
	p := newTestProvider(t)
	pair, err := p.IssuePair("u1", domain.RoleUser)
	require.NoError(t, err)

	_, err = p.Verify(pair.Access, TokenTypeRefresh)
	assert.Error(t, err)
	_, err = p.Verify(pair.Refresh, TokenTypeAccess)
	assert.Error(t, err)
}

func TestVerify_DistinctJTIs(t *testing.T) {
	p := newTestProvider(t)
	pair, err := p.IssuePair("u1", domain.RoleUser)
	require.NoError(t, err)

	access, err := p.Verify(pair.Access, TokenTypeAccess)
	require.NoError(t, err)
	refresh, err := p.Verify(pair.Refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, access.ID, refresh.ID)
}

func TestVerify_WrongKeyRejected(t *testing.T) {
	p := newTestProvider(t)
	other, err := NewProvider(&config.Config{
		JWTSigningKey:   "a-different-key",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: time.Hour,
	})
	require.NoError(t, err)

	pair, err := other.IssuePair("u1", domain.RoleUser)
	require.NoError(t, err)

	_, err = p.Verify(pair.Access, TokenTypeAccess)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	p := newTestProvider(t)
	_, err := p.Verify("not-a-token", TokenTypeAccess)
	assert.Error(t, err)
}

func TestVerify_ExpiredToken(t *testing.T) {
	p, err := NewProvider(&config.Config{
		JWTSigningKey:   "test-signing-key",
		AccessTokenTTL:  -time.Hour, // issued already expired
		RefreshTokenTTL: -time.Hour,
	})
	require.NoError(t, err)

	pair, err := p.IssuePair("u1", domain.RoleUser)
	require.NoError(t, err)

	_, err = p.Verify(pair.Access, TokenTypeAccess)
	assert.Error(t, err)
}
