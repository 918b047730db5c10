package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"learning_platform/internal/logger"
	"learning_platform/internal/models"
	"learning_platform/internal/repository"
)

// ActivityRecorder appends to the mutation trail. Recording never fails the
// caller; append errors are only logged.
type ActivityRecorder interface {
	Record(ctx context.Context, a models.Activity)
}

type ActivityService struct {
	repo repository.ActivityRepo
	log  *logger.Logger
}

func NewActivityService(repo repository.ActivityRepo, log *logger.Logger) *ActivityService {
	if log == nil {
		log = logger.Nop()
	}
	return &ActivityService{repo: repo, log: log.Named("activity")}
}

// Record fills the actor from ctx when unset. The append outlives request
// cancellation so a client hanging up does not drop the entry.
func (s *ActivityService) Record(ctx context.Context, a models.Activity) {
	if a.Actor == "" {
		a.Actor = ActorFromContext(ctx)
	}
	if err := s.repo.Append(context.WithoutCancel(ctx), a); err != nil {
		s.log.Warnw("activity append failed", "type", a.Type, "subject", a.Subject, "err", err)
	}
}

func (s *ActivityService) List(ctx context.Context, f ActivityFilter) ([]models.Activity, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.List(ctx, from, to, typ)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	if events == nil {
		events = []models.Activity{}
	}
	return events, nil
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeActivityType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f ActivityFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", ErrInvalidTimeRange
	}
	return from, to, normalizeActivityType(f.Type), nil
}
