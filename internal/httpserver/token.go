// internal/httpserver/token.go
//
// Per-game bearer tokens.
// POST /game/new hands out an HS256 JWT whose subject is the game ID; every
// later request on that game must present it. The signing key is derived
// from JWT_SECRET with HKDF so the raw secret is never used as a MAC key.

package httpserver

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const tokenIssuer = "wordle-go"

var errNoToken = errors.New("missing bearer token")

type tokens struct {
	key []byte
	ttl time.Duration
}

func newTokens(secret string, ttl time.Duration) (*tokens, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("wordle game token v1"))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive token key: %w", err)
	}
	return &tokens{key: key, ttl: ttl}, nil
}

// issue signs a token for gameID and returns it with its expiry.
func (t *tokens) issue(gameID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   gameID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := tok.SignedString(t.key)
	return ss, exp, err
}

// verify checks the signature and expiry and returns the game ID.
func (t *tokens) verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, error) {
	a := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return "", errNoToken
	}
	tok := strings.TrimSpace(a[7:])
	if tok == "" {
		return "", errNoToken
	}
	return tok, nil
}
