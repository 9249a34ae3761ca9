package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MexicoHamburger/Copoto/config"
)

// Tokens is the pair handed back by login and refresh. ExpiresIn is the
// access-token lifetime in seconds.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

const minKeyLen = 32

// TokenSigner issues and parses the short-lived access tokens. Verification
// is pure computation; no token is ever looked up in storage.
type TokenSigner interface {
	Issue(subject string) (string, error)
	Parse(token string) (*jwt.Token, jwt.MapClaims, error)
}

type tokenSigner struct {
	key []byte
	ttl time.Duration
}

func NewTokenSigner(cfg *config.Config) (TokenSigner, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret required")
	}
	if len(cfg.JWTSecret) < minKeyLen {
		return nil, fmt.Errorf("jwt secret too short: need at least %d bytes, got %d", minKeyLen, len(cfg.JWTSecret))
	}
	return &tokenSigner{key: []byte(cfg.JWTSecret), ttl: cfg.AccessTTL}, nil
}

func (s *tokenSigner) Issue(subject string) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	})
	return token.SignedString(s.key)
}

func (s *tokenSigner) Parse(tokenStr string) (*jwt.Token, jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	})
	return token, claims, err
}
