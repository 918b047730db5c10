package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"learning_platform/internal/models"
	"learning_platform/internal/repository"
)

// AccountService manages existing accounts.
type AccountService struct {
	accounts repository.AccountRepo
	activity ActivityRecorder
	now      func() time.Time
}

func NewAccountService(repo repository.AccountRepo, activity ActivityRecorder) *AccountService {
	return &AccountService{accounts: repo, activity: activity, now: time.Now}
}

// List returns every account without password hashes.
func (s *AccountService) List(ctx context.Context) ([]models.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	for i := range accounts {
		accounts[i].PasswordHash = ""
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return accounts, nil
}

func (s *AccountService) UpdatePassword(ctx context.Context, username, password string) error {
	if password == "" {
		return missing("password is required")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	err = s.accounts.UpdatePassword(ctx, username, hash, s.now().UTC())
	if errors.Is(err, repository.ErrNotFound) {
		return errAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.activity.Record(ctx, models.Activity{
		Type:        models.ActivityAccountUpdated,
		Subject:     username,
		Description: "password changed",
	})
	return nil
}

func (s *AccountService) Delete(ctx context.Context, username string) error {
	err := s.accounts.Delete(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return errAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	s.activity.Record(ctx, models.Activity{
		Type:        models.ActivityAccountDeleted,
		Subject:     username,
		Description: "account deleted",
	})
	return nil
}
