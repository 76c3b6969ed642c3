package auth

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gamegalaxy/exchange/apperr"
)

// Both halves of a credential pair are HS256 JWTs carrying the principal id
// in sub plus a random jti nonce, each signed with its own secret. The
// access token is short-lived and validated statelessly; the refresh token
// is long-lived and additionally checked against the credential store.

func signToken(secret string, userID uint, username string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	nonce, err := randomHex(16)
	if err != nil {
		return "", time.Time{}, err
	}
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"jti":      nonce,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// parseToken verifies signature and expiry and extracts the principal id.
// Every failure mode collapses into Unauthenticated.
func parseToken(secret, token string) (uint, error) {
	id, _, err := parsePrincipal(secret, token)
	return id, err
}

// parsePrincipal additionally returns the username claim, which the
// middleware threads through to logout.
func parsePrincipal(secret, token string) (uint, string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.New(apperr.Unauthenticated, "Invalid token.")
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return 0, "", apperr.Wrap(apperr.Unauthenticated, "Invalid token.", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", apperr.New(apperr.Unauthenticated, "Invalid token.")
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, "", apperr.Wrap(apperr.Unauthenticated, "Invalid token.", err)
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return 0, "", apperr.New(apperr.Unauthenticated, "Invalid token.")
	}
	username, _ := claims["username"].(string)
	return uint(id), username, nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
