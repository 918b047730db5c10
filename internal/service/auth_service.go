package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"learning_platform/internal/models"
	"learning_platform/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// passwordCost matches the work factor existing hashes were created with.
const passwordCost = 10

// AuthService handles registration, login and token exchange.
type AuthService struct {
	accounts repository.AccountRepo
	tokens   *TokenManager
	activity ActivityRecorder
	now      func() time.Time
}

func NewAuthService(repo repository.AccountRepo, tokens *TokenManager, activity ActivityRecorder) *AuthService {
	return &AuthService{accounts: repo, tokens: tokens, activity: activity, now: time.Now}
}

// Register hashes the password and creates a new account.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return missing("username and password are required")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	err = s.accounts.Create(ctx, models.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrDuplicateUsername
	}
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	s.activity.Record(ctx, models.Activity{
		Type:        models.ActivityAccountRegistered,
		Actor:       username,
		Subject:     username,
		Description: "account registered",
	})
	return nil
}

// Login checks credentials and returns a fresh access/refresh pair. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (TokenPair, error) {
	if username == "" || password == "" {
		return TokenPair{}, ErrInvalidCredentials
	}
	acc, err := s.accounts.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return TokenPair{}, fmt.Errorf("load account: %w", err)
	}
	if err := verifyPassword(acc.PasswordHash, password); err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccessToken(acc.Username)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.tokens.IssueRefreshToken(acc.Username)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(_ context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", missing("refreshToken is required")
	}
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	return s.tokens.IssueAccessToken(claims.Username)
}

// ParseToken verifies an access token and returns the username it carries.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	claims, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
