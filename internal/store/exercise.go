package store

import (
	"context"

	"github.com/arjohnson15/workoutapp/internal/docstore"
	"github.com/arjohnson15/workoutapp/types"
)

// ExerciseRepository handles persistence for the exercise catalog.
type ExerciseRepository struct {
	exercises *docstore.Collection[types.Exercise]
}

func NewExerciseRepository(s docstore.Store) *ExerciseRepository {
	return &ExerciseRepository{exercises: docstore.NewCollection[types.Exercise](s, docstore.Exercises)}
}

// List returns the whole catalog in storage order.
func (r *ExerciseRepository) List(ctx context.Context) ([]types.Exercise, error) {
	return r.exercises.All(ctx)
}

func (r *ExerciseRepository) Get(ctx context.Context, id types.ExerciseID) (types.Exercise, error) {
	exercises, err := r.exercises.All(ctx)
	if err != nil {
		return types.Exercise{}, err
	}
	for _, ex := range exercises {
		if ex.ID == id {
			return ex, nil
		}
	}
	return types.Exercise{}, ErrNotFound
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise types.Exercise) (types.Exercise, error) {
	err := r.exercises.Update(ctx, func(exercises []types.Exercise) ([]types.Exercise, error) {
		for _, ex := range exercises {
			if ex.ID == exercise.ID {
				return nil, ErrDuplicateID
			}
		}
		return append(exercises, exercise), nil
	})
	if err != nil {
		return types.Exercise{}, err
	}
	return exercise, nil
}

// Update applies fn to a custom exercise owned by requesterID.
// Missing, catalog and foreign exercises all fail with ErrForbidden.
// The id is preserved and the entry stays custom whatever fn does.
func (r *ExerciseRepository) Update(ctx context.Context, id types.ExerciseID, requesterID int, fn func(*types.Exercise)) (types.Exercise, error) {
	var updated types.Exercise
	err := r.exercises.Update(ctx, func(exercises []types.Exercise) ([]types.Exercise, error) {
		idx := indexOfExercise(exercises, id)
		if idx < 0 || !exercises[idx].OwnedBy(requesterID) {
			return nil, ErrForbidden
		}
		ex := exercises[idx]
		fn(&ex)
		ex.ID = id
		ex.IsCustom = true
		ex.CreatedBy = exercises[idx].CreatedBy
		exercises[idx] = ex
		updated = ex
		return exercises, nil
	})
	if err != nil {
		return types.Exercise{}, err
	}
	return updated, nil
}

// Delete removes a custom exercise owned by requesterID, with the same
// precondition as Update.
func (r *ExerciseRepository) Delete(ctx context.Context, id types.ExerciseID, requesterID int) error {
	return r.exercises.Update(ctx, func(exercises []types.Exercise) ([]types.Exercise, error) {
		idx := indexOfExercise(exercises, id)
		if idx < 0 || !exercises[idx].OwnedBy(requesterID) {
			return nil, ErrForbidden
		}
		return append(exercises[:idx], exercises[idx+1:]...), nil
	})
}

// ReplaceAll overwrites the catalog, dropping custom entries as well.
func (r *ExerciseRepository) ReplaceAll(ctx context.Context, exercises []types.Exercise) error {
	return r.exercises.Replace(ctx, exercises)
}

// SeedIfEmpty writes exercises only when the catalog holds nothing yet.
// It reports whether the catalog was written.
func (r *ExerciseRepository) SeedIfEmpty(ctx context.Context, exercises []types.Exercise) (bool, error) {
	seeded := false
	err := r.exercises.Update(ctx, func(current []types.Exercise) ([]types.Exercise, error) {
		if len(current) > 0 {
			return current, nil
		}
		seeded = true
		return exercises, nil
	})
	return seeded, err
}

func indexOfExercise(exercises []types.Exercise, id types.ExerciseID) int {
	for i, ex := range exercises {
		if ex.ID == id {
			return i
		}
	}
	return -1
}
