package store

import (
	"context"
	"errors"

	"github.com/arjohnson15/workoutapp/internal/docstore"
	"github.com/arjohnson15/workoutapp/types"
)

// SettingsRepository handles persistence for per-user settings.
type SettingsRepository struct {
	settings *docstore.Collection[types.UserSettings]
}

func NewSettingsRepository(s docstore.Store) *SettingsRepository {
	return &SettingsRepository{settings: docstore.NewCollection[types.UserSettings](s, docstore.Settings)}
}

func (r *SettingsRepository) Get(ctx context.Context, userID int) (types.UserSettings, error) {
	all, err := r.settings.All(ctx)
	if err != nil {
		return types.UserSettings{}, err
	}
	for _, s := range all {
		if s.UserID == userID {
			return s, nil
		}
	}
	return types.UserSettings{}, ErrNotFound
}

// GetOrCreate returns the stored settings of userID, persisting def first
// when none exist.
func (r *SettingsRepository) GetOrCreate(ctx context.Context, userID int, def types.UserSettings) (types.UserSettings, error) {
	if existing, err := r.Get(ctx, userID); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return types.UserSettings{}, err
	}

	result := def
	err := r.settings.Update(ctx, func(all []types.UserSettings) ([]types.UserSettings, error) {
		for _, s := range all {
			if s.UserID == userID {
				result = s
				return all, nil
			}
		}
		def.UserID = userID
		result = def
		return append(all, def), nil
	})
	if err != nil {
		return types.UserSettings{}, err
	}
	return result, nil
}

// Put replaces the settings of settings.UserID, creating them if absent.
func (r *SettingsRepository) Put(ctx context.Context, settings types.UserSettings) (types.UserSettings, error) {
	err := r.settings.Update(ctx, func(all []types.UserSettings) ([]types.UserSettings, error) {
		for i, s := range all {
			if s.UserID == settings.UserID {
				all[i] = settings
				return all, nil
			}
		}
		return append(all, settings), nil
	})
	if err != nil {
		return types.UserSettings{}, err
	}
	return settings, nil
}
