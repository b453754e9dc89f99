package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/arjohnson15/workoutapp/internal/events"
	"github.com/arjohnson15/workoutapp/internal/metrics"
	"github.com/arjohnson15/workoutapp/internal/store"
	"github.com/arjohnson15/workoutapp/types"
)

// WorkoutRepository defines persistence operations for workout entries.
type WorkoutRepository interface {
	Create(ctx context.Context, entry types.WorkoutEntry) (types.WorkoutEntry, error)
	ListByUser(ctx context.Context, userID int) ([]types.WorkoutEntry, error)
	Delete(ctx context.Context, userID, id int) (types.WorkoutEntry, error)
}

// ExerciseLookup resolves catalog entries by id.
type ExerciseLookup interface {
	Get(ctx context.Context, id types.ExerciseID) (types.Exercise, error)
}

// EventPublisher receives workout lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event events.WorkoutEvent) error
}

// LogWorkoutInput is what a client submits when logging a workout.
type LogWorkoutInput struct {
	ExerciseID   types.ExerciseID   `json:"exerciseId"`
	ExerciseName string             `json:"exerciseName"`
	Type         types.ExerciseType `json:"type,omitempty"`
	Sets         []types.Set        `json:"sets"`
	Notes        string             `json:"notes,omitempty"`
}

// WorkoutService encapsulates workout log use-cases.
type WorkoutService struct {
	repo      WorkoutRepository
	exercises ExerciseLookup
	publisher EventPublisher
	metrics   *metrics.Manager
	now       func() time.Time
}

// NewWorkoutService builds the service. exercises may be nil, in which case
// an omitted type is left for the sets to decide.
func NewWorkoutService(repo WorkoutRepository, exercises ExerciseLookup) *WorkoutService {
	return &WorkoutService{repo: repo, exercises: exercises, now: time.Now}
}

func (s *WorkoutService) WithPublisher(p EventPublisher) *WorkoutService {
	s.publisher = p
	return s
}

func (s *WorkoutService) WithMetrics(m *metrics.Manager) *WorkoutService {
	s.metrics = m
	return s
}

func (s *WorkoutService) WithClock(now func() time.Time) *WorkoutService {
	s.now = now
	return s
}

// Append stamps the entry with the current time and stores it under the
// next sequential id. Exercise ids are not validated against the catalog.
func (s *WorkoutService) Append(ctx context.Context, userID int, in LogWorkoutInput) (types.WorkoutEntry, error) {
	sets := in.Sets
	if sets == nil {
		sets = []types.Set{}
	}
	entry := types.WorkoutEntry{
		UserID:       userID,
		ExerciseID:   in.ExerciseID,
		ExerciseName: in.ExerciseName,
		Type:         in.Type,
		Sets:         sets,
		Notes:        in.Notes,
		Date:         s.now().UTC(),
	}
	if entry.Type == "" {
		entry.Type = s.lookupType(ctx, in.ExerciseID)
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return types.WorkoutEntry{}, err
	}
	if s.metrics != nil {
		s.metrics.CounterWorkoutsLogged.Inc()
	}
	s.publish(ctx, events.WorkoutLogged, created)
	return created, nil
}

// ListForUser returns the user's entries in storage order.
func (s *WorkoutService) ListForUser(ctx context.Context, userID int) ([]types.WorkoutEntry, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListForUserInRange keeps entries with start <= date <= end. Either bound
// may be nil.
func (s *WorkoutService) ListForUserInRange(ctx context.Context, userID int, start, end *time.Time) ([]types.WorkoutEntry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	filtered := make([]types.WorkoutEntry, 0, len(entries))
	for _, e := range entries {
		if start != nil && e.Date.Before(*start) {
			continue
		}
		if end != nil && e.Date.After(*end) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}

// MostRecentForExercise returns the user's latest entry for exerciseID.
// On equal dates the entry stored later wins.
func (s *WorkoutService) MostRecentForExercise(ctx context.Context, userID int, exerciseID types.ExerciseID) (types.WorkoutEntry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return types.WorkoutEntry{}, err
	}
	var (
		latest types.WorkoutEntry
		found  bool
	)
	for _, e := range entries {
		if e.ExerciseID != exerciseID {
			continue
		}
		if !found || !e.Date.Before(latest.Date) {
			latest = e
			found = true
		}
	}
	if !found {
		return types.WorkoutEntry{}, fmt.Errorf("no workout for exercise %s: %w", exerciseID, store.ErrNotFound)
	}
	return latest, nil
}

// Delete removes entry id if it belongs to userID.
func (s *WorkoutService) Delete(ctx context.Context, userID, id int) error {
	removed, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	s.publish(ctx, events.WorkoutDeleted, removed)
	return nil
}

func (s *WorkoutService) lookupType(ctx context.Context, id types.ExerciseID) types.ExerciseType {
	if s.exercises == nil || id == "" {
		return ""
	}
	ex, err := s.exercises.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.WithError(err).Warnf("resolve type of exercise %s", id)
		}
		return ""
	}
	return ex.Type
}

func (s *WorkoutService) publish(ctx context.Context, t events.Type, entry types.WorkoutEntry) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewWorkoutEvent(t, entry, s.now().UTC())); err != nil {
		log.WithError(err).Warnf("publish %s for workout %d", t, entry.ID)
	}
}
