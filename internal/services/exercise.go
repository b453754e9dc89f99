package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/arjohnson15/workoutapp/internal/catalog"
	"github.com/arjohnson15/workoutapp/internal/store"
	"github.com/arjohnson15/workoutapp/types"
)

// CustomExercisePrefix starts every user-created exercise id, so custom ids
// never collide with numeric catalog ids.
const CustomExercisePrefix = "custom_"

// ExerciseRepository defines persistence operations for the catalog.
type ExerciseRepository interface {
	List(ctx context.Context) ([]types.Exercise, error)
	Get(ctx context.Context, id types.ExerciseID) (types.Exercise, error)
	Create(ctx context.Context, exercise types.Exercise) (types.Exercise, error)
	Update(ctx context.Context, id types.ExerciseID, requesterID int, fn func(*types.Exercise)) (types.Exercise, error)
	Delete(ctx context.Context, id types.ExerciseID, requesterID int) error
}

// ExerciseService encapsulates catalog use-cases.
type ExerciseService struct {
	repo  ExerciseRepository
	intn  func(n int) int
	newID func() string
}

func NewExerciseService(repo ExerciseRepository) *ExerciseService {
	return &ExerciseService{
		repo:  repo,
		intn:  rand.IntN,
		newID: uuid.NewString,
	}
}

// WithRand replaces the uniform index source used by RandomByMuscle.
func (s *ExerciseService) WithRand(intn func(n int) int) *ExerciseService {
	s.intn = intn
	return s
}

func (s *ExerciseService) ListAll(ctx context.Context) ([]types.Exercise, error) {
	return s.repo.List(ctx)
}

func (s *ExerciseService) Get(ctx context.Context, id types.ExerciseID) (types.Exercise, error) {
	return s.repo.Get(ctx, id)
}

// ListByCategory matches the category case-insensitively.
func (s *ExerciseService) ListByCategory(ctx context.Context, category string) ([]types.Exercise, error) {
	return s.filter(ctx, func(ex types.Exercise) bool {
		return strings.EqualFold(ex.Category, category)
	})
}

// ListByMuscle matches primary muscles case-insensitively.
func (s *ExerciseService) ListByMuscle(ctx context.Context, muscle string) ([]types.Exercise, error) {
	return s.filter(ctx, func(ex types.Exercise) bool {
		return ex.HasMuscle(muscle)
	})
}

// RandomByMuscle picks uniformly among the exercises targeting muscle.
func (s *ExerciseService) RandomByMuscle(ctx context.Context, muscle string) (types.Exercise, error) {
	matches, err := s.ListByMuscle(ctx, muscle)
	if err != nil {
		return types.Exercise{}, err
	}
	if len(matches) == 0 {
		return types.Exercise{}, fmt.Errorf("no exercise for muscle %q: %w", muscle, store.ErrNotFound)
	}
	return matches[s.intn(len(matches))], nil
}

func (s *ExerciseService) Categories(ctx context.Context) ([]string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Categories(all), nil
}

func (s *ExerciseService) Muscles(ctx context.Context) ([]string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Muscles(all), nil
}

// Create stores a custom exercise owned by ownerID under a fresh id.
func (s *ExerciseService) Create(ctx context.Context, fields types.ExerciseFields, ownerID int) (types.Exercise, error) {
	owner := ownerID
	exercise := types.Exercise{}
	fields.Apply(&exercise)
	exercise.IsCustom = true
	exercise.CreatedBy = &owner

	for attempt := 0; attempt < 3; attempt++ {
		exercise.ID = types.ExerciseID(CustomExercisePrefix + s.newID())
		created, err := s.repo.Create(ctx, exercise)
		if errors.Is(err, store.ErrDuplicateID) {
			continue
		}
		return created, err
	}
	return types.Exercise{}, fmt.Errorf("allocate exercise id: %w", store.ErrDuplicateID)
}

// Update merges fields over a custom exercise owned by requesterID.
func (s *ExerciseService) Update(ctx context.Context, id types.ExerciseID, fields types.ExerciseFields, requesterID int) (types.Exercise, error) {
	return s.repo.Update(ctx, id, requesterID, fields.Apply)
}

// Delete removes a custom exercise owned by requesterID.
func (s *ExerciseService) Delete(ctx context.Context, id types.ExerciseID, requesterID int) error {
	return s.repo.Delete(ctx, id, requesterID)
}

func (s *ExerciseService) filter(ctx context.Context, keep func(types.Exercise) bool) ([]types.Exercise, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	matches := make([]types.Exercise, 0)
	for _, ex := range all {
		if keep(ex) {
			matches = append(matches, ex)
		}
	}
	return matches, nil
}
