package store

import (
	"context"

	"github.com/arjohnson15/workoutapp/internal/docstore"
	"github.com/arjohnson15/workoutapp/types"
)

// WorkoutRepository handles persistence for workout entries.
type WorkoutRepository struct {
	workouts *docstore.Collection[types.WorkoutEntry]
	ids      *sequence
}

func NewWorkoutRepository(s docstore.Store) *WorkoutRepository {
	return &WorkoutRepository{
		workouts: docstore.NewCollection[types.WorkoutEntry](s, docstore.Workouts),
		ids:      newSequence(s, docstore.Workouts),
	}
}

// Create assigns the next global id and appends the entry.
func (r *WorkoutRepository) Create(ctx context.Context, entry types.WorkoutEntry) (types.WorkoutEntry, error) {
	err := r.workouts.Update(ctx, func(entries []types.WorkoutEntry) ([]types.WorkoutEntry, error) {
		id, err := r.ids.next(ctx, nextID(entries, func(e types.WorkoutEntry) int { return e.ID }))
		if err != nil {
			return nil, err
		}
		entry.ID = id
		return append(entries, entry), nil
	})
	if err != nil {
		return types.WorkoutEntry{}, err
	}
	return entry, nil
}

// ListByUser returns the entries owned by userID in storage order.
func (r *WorkoutRepository) ListByUser(ctx context.Context, userID int) ([]types.WorkoutEntry, error) {
	entries, err := r.workouts.All(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]types.WorkoutEntry, 0)
	for _, e := range entries {
		if e.UserID == userID {
			owned = append(owned, e)
		}
	}
	return owned, nil
}

// Delete removes entry id when it belongs to userID and returns it.
func (r *WorkoutRepository) Delete(ctx context.Context, userID, id int) (types.WorkoutEntry, error) {
	var removed types.WorkoutEntry
	err := r.workouts.Update(ctx, func(entries []types.WorkoutEntry) ([]types.WorkoutEntry, error) {
		for i, e := range entries {
			if e.ID == id && e.UserID == userID {
				removed = e
				return append(entries[:i], entries[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return types.WorkoutEntry{}, err
	}
	return removed, nil
}
