package service

import (
	"context"

	"learning_platform/internal/config"
	"learning_platform/internal/logger"
	"learning_platform/internal/models"
	"learning_platform/internal/repository"
)

type Authorization interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	ParseToken(accessToken string) (string, error)
}

type Accounts interface {
	List(ctx context.Context) ([]models.Account, error)
	UpdatePassword(ctx context.Context, username, password string) error
	Delete(ctx context.Context, username string) error
}

type Modules interface {
	Create(ctx context.Context, title string) (models.Module, error)
	Get(ctx context.Context, id string) (models.Module, error)
	List(ctx context.Context) ([]models.Module, error)
	UpdateTitle(ctx context.Context, id, title string) (models.Module, error)
	Delete(ctx context.Context, id string) error
}

type Exercises interface {
	Add(ctx context.Context, moduleID string, in ExerciseInput) (models.Exercise, error)
	AddMany(ctx context.Context, moduleID string, in []ExerciseInput) ([]models.Exercise, error)
	List(ctx context.Context, moduleID string) ([]models.Exercise, error)
	Get(ctx context.Context, moduleID, exerciseID string) (models.Exercise, error)
	Update(ctx context.Context, moduleID, exerciseID string, patch ExercisePatch) (models.Exercise, error)
	Remove(ctx context.Context, moduleID, exerciseID string) error
}

// ActivityLog exposes the append-only trail with filtering access.
type ActivityLog interface {
	ActivityRecorder
	List(ctx context.Context, f ActivityFilter) ([]models.Activity, error)
}

// Service aggregates all sub-services. Handlers reach them by field name
// since several share method names.
type Service struct {
	Authorization
	Accounts
	Modules
	Exercises
	ActivityLog
}

func NewService(repos *repository.Repository, jwtCfg config.JWTConfig, log *logger.Logger) *Service {
	activity := NewActivityService(repos.Activity, log)
	return &Service{
		Authorization: NewAuthService(repos.Accounts, NewTokenManager(jwtCfg), activity),
		Accounts:      NewAccountService(repos.Accounts, activity),
		Modules:       NewModuleService(repos.Modules, activity),
		Exercises:     NewExerciseService(repos.Modules, activity),
		ActivityLog:   activity,
	}
}
