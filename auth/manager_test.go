package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamegalaxy/exchange/apperr"
)

func testConfig() Config {
	return Config{
		Secret:        "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     30 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	}
}

func TestIssueAndValidate(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), testConfig())

	pair, err := m.Issue(ctx, 42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, pair.Token)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.Token, pair.RefreshToken)
	assert.True(t, pair.TokenExpiration.Before(pair.RefreshTokenExpiration))

	userID, err := m.Validate(pair.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := NewManager(NewMemoryStore(), testConfig())

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := m.Validate(token)
		assert.Error(t, err, "token %q", token)
		assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
	}
}

func TestValidateRejectsWrongSignature(t *testing.T) {
	ctx := context.Background()
	other := NewManager(NewMemoryStore(), Config{
		Secret:        "some-other-secret",
		RefreshSecret: "some-other-refresh",
		AccessTTL:     time.Hour,
		RefreshTTL:    time.Hour,
	})
	pair, err := other.Issue(ctx, 7, "mallory")
	require.NoError(t, err)

	m := NewManager(NewMemoryStore(), testConfig())
	_, err = m.Validate(pair.Token)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestValidateRejectsExpired(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.AccessTTL = -time.Minute
	m := NewManager(NewMemoryStore(), cfg)

	pair, err := m.Issue(ctx, 1, "bob")
	require.NoError(t, err)

	_, err = m.Validate(pair.Token)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestValidateRejectsRefreshTokenAsAccess(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), testConfig())
	pair, err := m.Issue(ctx, 5, "carol")
	require.NoError(t, err)

	// A refresh token is signed with a different secret and must not pass
	// access validation.
	_, err = m.Validate(pair.RefreshToken)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestRefreshRotatesPair(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(store, testConfig())

	first, err := m.Issue(ctx, 42, "alice")
	require.NoError(t, err)

	second, err := m.Refresh(ctx, "alice", first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The old refresh token is now revoked.
	_, err = m.Refresh(ctx, "alice", first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// The new one still works.
	_, err = m.Refresh(ctx, "alice", second.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsMismatch(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	m := NewManager(NewMemoryStore(), cfg)

	_, err := m.Issue(ctx, 42, "alice")
	require.NoError(t, err)

	// Well-formed and unexpired, but not the stored token: still rejected.
	forged, _, err := signToken(cfg.RefreshSecret, 42, "alice", cfg.RefreshTTL)
	require.NoError(t, err)
	_, err = m.Refresh(ctx, "alice", forged)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshRejectsUnknownPrincipal(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	m := NewManager(NewMemoryStore(), cfg)

	token, _, err := signToken(cfg.RefreshSecret, 9, "ghost", cfg.RefreshTTL)
	require.NoError(t, err)
	_, err = m.Refresh(ctx, "ghost", token)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshRejectsAccessTokenAsRefresh(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), testConfig())
	pair, err := m.Issue(ctx, 42, "alice")
	require.NoError(t, err)

	_, err = m.Refresh(ctx, "alice", pair.Token)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLoginOverwritesPriorSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(store, testConfig())

	first, err := m.Issue(ctx, 42, "alice")
	require.NoError(t, err)
	_, err = m.Issue(ctx, 42, "alice")
	require.NoError(t, err)

	// Second login superseded the first pair; its refresh token is dead.
	_, err = m.Refresh(ctx, "alice", first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRevokeCutsOffRefresh(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), testConfig())

	pair, err := m.Issue(ctx, 42, "alice")
	require.NoError(t, err)
	require.NoError(t, m.Revoke(ctx, "alice"))

	_, err = m.Refresh(ctx, "alice", pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// Access tokens survive until natural expiry, deliberately.
	_, err = m.Validate(pair.Token)
	assert.NoError(t, err)
}
