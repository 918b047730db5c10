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
)

// ModuleService owns module documents. Exercise edits go through
// ExerciseService, which rewrites the same document.
type ModuleService struct {
	modules  repository.ModuleRepo
	activity ActivityRecorder
	now      func() time.Time
}

func NewModuleService(repo repository.ModuleRepo, activity ActivityRecorder) *ModuleService {
	return &ModuleService{modules: repo, activity: activity, now: time.Now}
}

func (s *ModuleService) Create(ctx context.Context, title string) (models.Module, error) {
	if strings.TrimSpace(title) == "" {
		return models.Module{}, missing("title is required")
	}
	now := s.now().UTC()
	m := models.Module{
		ID:        uuid.NewString(),
		Title:     title,
		Exercises: []models.Exercise{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.modules.Create(ctx, m); err != nil {
		return models.Module{}, fmt.Errorf("create module: %w", err)
	}

	s.activity.Record(ctx, models.Activity{
		Type:        models.ActivityModuleCreated,
		Subject:     m.ID,
		Description: fmt.Sprintf("module %q created", title),
	})
	return m, nil
}

func (s *ModuleService) Get(ctx context.Context, id string) (models.Module, error) {
	return loadModule(ctx, s.modules, id)
}

func (s *ModuleService) List(ctx context.Context) ([]models.Module, error) {
	modules, err := s.modules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	if modules == nil {
		modules = []models.Module{}
	}
	return modules, nil
}

// UpdateTitle renames a module and returns it as stored afterwards.
func (s *ModuleService) UpdateTitle(ctx context.Context, id, title string) (models.Module, error) {
	if strings.TrimSpace(title) == "" {
		return models.Module{}, missing("title is required")
	}
	err := s.modules.UpdateTitle(ctx, id, title, s.now().UTC())
	if errors.Is(err, repository.ErrNotFound) {
		return models.Module{}, errModuleNotFound
	}
	if err != nil {
		return models.Module{}, fmt.Errorf("update module: %w", err)
	}

	s.activity.Record(ctx, models.Activity{
		Type:        models.ActivityModuleUpdated,
		Subject:     id,
		Description: fmt.Sprintf("module renamed to %q", title),
	})
	return loadModule(ctx, s.modules, id)
}

// Delete removes the module together with its exercises.
func (s *ModuleService) Delete(ctx context.Context, id string) error {
	err := s.modules.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return errModuleNotFound
	}
	if err != nil {
		return fmt.Errorf("delete module: %w", err)
	}

	s.activity.Record(ctx, models.Activity{
		Type:        models.ActivityModuleDeleted,
		Subject:     id,
		Description: "module deleted",
	})
	return nil
}

func loadModule(ctx context.Context, repo repository.ModuleRepo, id string) (models.Module, error) {
	m, err := repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Module{}, errModuleNotFound
	}
	if err != nil {
		return models.Module{}, fmt.Errorf("load module: %w", err)
	}
	// Callers edit the list in place; never alias the store's slice.
	m.Exercises = append([]models.Exercise{}, m.Exercises...)
	return m, nil
}
