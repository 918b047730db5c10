package service

import (
	"fmt"
	"time"

	"learning_platform/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims defines JWT claims for both token kinds.
type Claims struct {
	jwt.RegisteredClaims
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
}

// TokenManager issues and verifies HS256 tokens. Access and refresh tokens
// are signed with different secrets.
type TokenManager struct {
	accessKey  []byte
	refreshKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration // zero: no exp claim
	now        func() time.Time
}

func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	return &TokenManager{
		accessKey:  []byte(cfg.AccessSecret),
		refreshKey: []byte(cfg.RefreshSecret),
		accessTTL:  cfg.AccessExpiry,
		refreshTTL: cfg.RefreshExpiry,
		now:        time.Now,
	}
}

func (m *TokenManager) IssueAccessToken(username string) (string, error) {
	return m.issue(username, tokenTypeAccess, m.accessKey, m.accessTTL)
}

func (m *TokenManager) IssueRefreshToken(username string) (string, error) {
	return m.issue(username, tokenTypeRefresh, m.refreshKey, m.refreshTTL)
}

// VerifyAccessToken rejects tokens without exp, tokens signed with the
// refresh secret and anything not HMAC-signed.
func (m *TokenManager) VerifyAccessToken(token string) (*Claims, error) {
	return m.verify(token, tokenTypeAccess, m.accessKey, jwt.WithExpirationRequired())
}

func (m *TokenManager) VerifyRefreshToken(token string) (*Claims, error) {
	return m.verify(token, tokenTypeRefresh, m.refreshKey)
}

func (m *TokenManager) issue(username, typ string, key []byte, ttl time.Duration) (string, error) {
	now := m.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Subject:  username,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Username:  username,
		TokenType: typ,
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

func (m *TokenManager) verify(token, typ string, key []byte, opts ...jwt.ParserOption) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != typ || claims.Username == "" {
		return nil, fmt.Errorf("%w: not a %s token", ErrInvalidToken, typ)
	}
	return claims, nil
}
