package service

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"learning_platform/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessExpiry:  time.Hour,
	}
}

func TestTokenManager_AccessRoundTrip(t *testing.T) {
	m := NewTokenManager(testJWTConfig())

	tok, err := m.IssueAccessToken("alice")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	claims, err := m.VerifyAccessToken(tok)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.Username != "alice" || claims.TokenType != tokenTypeAccess {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil {
		t.Fatalf("access token must carry exp")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("expected 1h lifetime, got %v", got)
	}
}

func TestTokenManager_RefreshHasNoExpiryByDefault(t *testing.T) {
	m := NewTokenManager(testJWTConfig())

	tok, err := m.IssueRefreshToken("alice")
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	claims, err := m.VerifyRefreshToken(tok)
	if err != nil {
		t.Fatalf("VerifyRefreshToken: %v", err)
	}
	if claims.ExpiresAt != nil {
		t.Fatalf("expected no exp claim, got %v", claims.ExpiresAt)
	}
}

func TestTokenManager_RefreshExpiryWhenConfigured(t *testing.T) {
	cfg := testJWTConfig()
	cfg.RefreshExpiry = 24 * time.Hour
	m := NewTokenManager(cfg)

	tok, err := m.IssueRefreshToken("alice")
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	claims, err := m.VerifyRefreshToken(tok)
	if err != nil {
		t.Fatalf("VerifyRefreshToken: %v", err)
	}
	if claims.ExpiresAt == nil {
		t.Fatalf("expected exp claim")
	}
}

func TestTokenManager_TokensAreNotInterchangeable(t *testing.T) {
	m := NewTokenManager(testJWTConfig())

	access, _ := m.IssueAccessToken("alice")
	refresh, _ := m.IssueRefreshToken("alice")

	if access == refresh {
		t.Fatalf("access and refresh tokens must differ")
	}
	if _, err := m.VerifyAccessToken(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token accepted as access: %v", err)
	}
	if _, err := m.VerifyRefreshToken(access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}
}

func TestTokenManager_WrongTypeSameKey(t *testing.T) {
	cfg := testJWTConfig()
	cfg.RefreshSecret = cfg.AccessSecret
	m := NewTokenManager(cfg)

	refresh, _ := m.IssueRefreshToken("alice")
	if _, err := m.VerifyAccessToken(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected token_type check to reject, got %v", err)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager(testJWTConfig())
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := m.IssueAccessToken("alice")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, err := m.VerifyAccessToken(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenManager_RejectsForeignTokens(t *testing.T) {
	m := NewTokenManager(testJWTConfig())
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username:  "mallory",
		TokenType: tokenTypeAccess,
	}

	otherKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("different-key"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}
	rs256, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privateKey)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Username:  "mallory",
		TokenType: tokenTypeAccess,
	}).SignedString([]byte("access-secret"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	cases := map[string]string{
		"malformed":    "not-a-jwt",
		"other key":    otherKey,
		"rs256":        rs256,
		"missing exp":  noExp,
		"empty string": "",
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := m.VerifyAccessToken(tok); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
