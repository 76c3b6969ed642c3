// Package auth issues, validates and rotates the access/refresh credential
// pairs that protect every API call. Access tokens are self-contained, so
// validation never touches the store; revocation only bites at refresh
// time, which is the documented trade-off of this design.
package auth

import (
	"context"
	"os"
	"time"

	"github.com/gamegalaxy/exchange/apperr"
)

var ErrInvalidRefreshToken = apperr.New(apperr.Unauthenticated, "Invalid refresh token.")

type Config struct {
	Secret        string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// ConfigFromEnv reads JWT_SECRET / JWT_REFRESH_SECRET with the default
// 30-minute access and 30-day refresh windows.
func ConfigFromEnv() Config {
	cfg := Config{
		Secret:        os.Getenv("JWT_SECRET"),
		RefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		AccessTTL:     30 * time.Minute,
		RefreshTTL:    30 * 24 * time.Hour,
	}
	if ttl, err := time.ParseDuration(os.Getenv("JWT_ACCESS_TTL")); err == nil && ttl > 0 {
		cfg.AccessTTL = ttl
	}
	if ttl, err := time.ParseDuration(os.Getenv("JWT_REFRESH_TTL")); err == nil && ttl > 0 {
		cfg.RefreshTTL = ttl
	}
	return cfg
}

type Manager struct {
	store CredentialStore
	cfg   Config
}

func NewManager(store CredentialStore, cfg Config) *Manager {
	return &Manager{store: store, cfg: cfg}
}

// Issue creates a fresh credential pair for the principal and stores it,
// replacing any pair issued before. Single active session per principal.
func (m *Manager) Issue(ctx context.Context, userID uint, username string) (Pair, error) {
	pair, err := m.newPair(userID, username)
	if err != nil {
		return Pair{}, apperr.Wrap(apperr.Internal, "Failed to issue credentials.", err)
	}
	if err := m.store.Put(ctx, username, pair); err != nil {
		return Pair{}, apperr.Wrap(apperr.Internal, "Failed to store credentials.", err)
	}
	return pair, nil
}

// Validate checks an access token's signature and expiry and returns the
// embedded principal id. The credential store is not consulted.
func (m *Manager) Validate(token string) (uint, error) {
	return parseToken(m.cfg.Secret, token)
}

// Principal is Validate plus the username claim.
func (m *Manager) Principal(token string) (uint, string, error) {
	return parsePrincipal(m.cfg.Secret, token)
}

// Refresh rotates the credential pair. The presented refresh token must
// both verify as a signed unexpired token and match the stored pair
// exactly; the compare-and-swap makes this the single revocation point.
func (m *Manager) Refresh(ctx context.Context, username, refreshToken string) (Pair, error) {
	userID, err := parseToken(m.cfg.RefreshSecret, refreshToken)
	if err != nil {
		return Pair{}, ErrInvalidRefreshToken
	}

	pair, err := m.newPair(userID, username)
	if err != nil {
		return Pair{}, apperr.Wrap(apperr.Internal, "Failed to issue credentials.", err)
	}

	swapped, err := m.store.CompareAndSwap(ctx, username, refreshToken, pair)
	if err != nil {
		return Pair{}, apperr.Wrap(apperr.Internal, "Failed to store credentials.", err)
	}
	if !swapped {
		return Pair{}, ErrInvalidRefreshToken
	}
	return pair, nil
}

// Revoke drops the stored pair on logout. Outstanding access tokens stay
// valid until their natural expiry; only refresh is cut off.
func (m *Manager) Revoke(ctx context.Context, username string) error {
	if err := m.store.Delete(ctx, username); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to revoke credentials.", err)
	}
	return nil
}

func (m *Manager) newPair(userID uint, username string) (Pair, error) {
	token, tokenExp, err := signToken(m.cfg.Secret, userID, username, m.cfg.AccessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, refreshExp, err := signToken(m.cfg.RefreshSecret, userID, username, m.cfg.RefreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{
		Token:                  token,
		TokenExpiration:        tokenExp,
		RefreshToken:           refresh,
		RefreshTokenExpiration: refreshExp,
	}, nil
}
