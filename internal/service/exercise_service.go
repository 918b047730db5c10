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

// ExerciseService edits the exercise list embedded in a module. Each mutation
// loads the module, changes the list and writes the whole document back in
// one Replace; concurrent writers to the same module are last-write-wins.
type ExerciseService struct {
	modules  repository.ModuleRepo
	activity ActivityRecorder
	now      func() time.Time
}

func NewExerciseService(repo repository.ModuleRepo, activity ActivityRecorder) *ExerciseService {
	return &ExerciseService{modules: repo, activity: activity, now: time.Now}
}

func (s *ExerciseService) Add(ctx context.Context, moduleID string, in ExerciseInput) (models.Exercise, error) {
	added, err := s.AddMany(ctx, moduleID, []ExerciseInput{in})
	if err != nil {
		return models.Exercise{}, err
	}
	return added[0], nil
}

// AddMany appends all inputs in order with a single write. Nothing is stored
// if any input is incomplete.
func (s *ExerciseService) AddMany(ctx context.Context, moduleID string, in []ExerciseInput) ([]models.Exercise, error) {
	if len(in) == 0 {
		return nil, missing("at least one exercise is required")
	}
	for i, e := range in {
		if strings.TrimSpace(e.Title) == "" || strings.TrimSpace(e.Description) == "" {
			if len(in) == 1 {
				return nil, missing("title and description are required")
			}
			return nil, missing(fmt.Sprintf("exercise %d: title and description are required", i))
		}
	}

	m, err := loadModule(ctx, s.modules, moduleID)
	if err != nil {
		return nil, err
	}
	added := make([]models.Exercise, 0, len(in))
	for _, e := range in {
		added = append(added, models.Exercise{
			ID:          uuid.NewString(),
			Title:       e.Title,
			Description: e.Description,
		})
	}
	m.Exercises = append(m.Exercises, added...)
	if err := s.save(ctx, m); err != nil {
		return nil, err
	}

	ids := make([]string, len(added))
	for i := range added {
		ids[i] = added[i].ID
	}
	s.activity.Record(ctx, models.Activity{
		Type:        models.ActivityExerciseAdded,
		Subject:     moduleID,
		Description: fmt.Sprintf("%d exercise(s) added", len(added)),
		Metadata:    map[string]any{"exercise_ids": ids},
	})
	return added, nil
}

func (s *ExerciseService) List(ctx context.Context, moduleID string) ([]models.Exercise, error) {
	m, err := loadModule(ctx, s.modules, moduleID)
	if err != nil {
		return nil, err
	}
	return m.Exercises, nil
}

func (s *ExerciseService) Get(ctx context.Context, moduleID, exerciseID string) (models.Exercise, error) {
	m, err := loadModule(ctx, s.modules, moduleID)
	if err != nil {
		return models.Exercise{}, err
	}
	i := m.ExerciseIndex(exerciseID)
	if i < 0 {
		return models.Exercise{}, errExerciseNotFound
	}
	return m.Exercises[i], nil
}

// Update replaces only the non-empty fields of patch.
func (s *ExerciseService) Update(ctx context.Context, moduleID, exerciseID string, patch ExercisePatch) (models.Exercise, error) {
	m, err := loadModule(ctx, s.modules, moduleID)
	if err != nil {
		return models.Exercise{}, err
	}
	i := m.ExerciseIndex(exerciseID)
	if i < 0 {
		return models.Exercise{}, errExerciseNotFound
	}

	ex := &m.Exercises[i]
	if patch.Title != "" {
		ex.Title = patch.Title
	}
	if patch.Description != "" {
		ex.Description = patch.Description
	}
	if err := s.save(ctx, m); err != nil {
		return models.Exercise{}, err
	}

	s.activity.Record(ctx, models.Activity{
		Type:        models.ActivityExerciseUpdated,
		Subject:     moduleID,
		Description: "exercise updated",
		Metadata:    map[string]any{"exercise_id": exerciseID},
	})
	return *ex, nil
}

func (s *ExerciseService) Remove(ctx context.Context, moduleID, exerciseID string) error {
	m, err := loadModule(ctx, s.modules, moduleID)
	if err != nil {
		return err
	}
	i := m.ExerciseIndex(exerciseID)
	if i < 0 {
		return errExerciseNotFound
	}
	m.Exercises = append(m.Exercises[:i], m.Exercises[i+1:]...)
	if err := s.save(ctx, m); err != nil {
		return err
	}

	s.activity.Record(ctx, models.Activity{
		Type:        models.ActivityExerciseRemoved,
		Subject:     moduleID,
		Description: "exercise removed",
		Metadata:    map[string]any{"exercise_id": exerciseID},
	})
	return nil
}

func (s *ExerciseService) save(ctx context.Context, m models.Module) error {
	m.UpdatedAt = s.now().UTC()
	err := s.modules.Replace(ctx, m)
	if errors.Is(err, repository.ErrNotFound) {
		return errModuleNotFound
	}
	if err != nil {
		return fmt.Errorf("save module: %w", err)
	}
	return nil
}
