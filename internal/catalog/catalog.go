// Package catalog loads the exercise catalog from the builtin list or a
// remote download and seeds it into storage.
package catalog

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/arjohnson15/workoutapp/types"
)

const (
	SourceRemote  = "remote"
	SourceBuiltin = "builtin"
)

// Repository is the catalog storage used for seeding.
type Repository interface {
	List(ctx context.Context) ([]types.Exercise, error)
	SeedIfEmpty(ctx context.Context, exercises []types.Exercise) (bool, error)
	ReplaceAll(ctx context.Context, exercises []types.Exercise) error
}

// Loader produces the exercises to seed.
type Loader struct {
	source  string
	fetcher *Fetcher
}

func NewLoader(source string, fetcher *Fetcher) *Loader {
	return &Loader{source: source, fetcher: fetcher}
}

func (l *Loader) Load(ctx context.Context) ([]types.Exercise, error) {
	switch l.source {
	case SourceBuiltin:
		return Builtin(), nil
	case SourceRemote, "":
		if l.fetcher == nil {
			return nil, errors.New("no exercise download configured")
		}
		return l.fetcher.Fetch(ctx)
	default:
		return nil, fmt.Errorf("unknown exercise source %q", l.source)
	}
}

// Bootstrap seeds the catalog when it is empty and returns the resulting
// catalog size. A load failure leaves the catalog empty.
func Bootstrap(ctx context.Context, repo Repository, loader *Loader) (int, error) {
	current, err := repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("read catalog: %w", err)
	}
	if len(current) > 0 {
		log.Debugf("exercise catalog already has %d entries", len(current))
		return len(current), nil
	}

	exercises, err := loader.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load exercises: %w", err)
	}
	seeded, err := repo.SeedIfEmpty(ctx, exercises)
	if err != nil {
		return 0, fmt.Errorf("seed catalog: %w", err)
	}
	if !seeded {
		all, err := repo.List(ctx)
		if err != nil {
			return 0, fmt.Errorf("read catalog: %w", err)
		}
		return len(all), nil
	}

	log.Infof("seeded exercise catalog with %d exercises", len(exercises))
	return len(exercises), nil
}

// Import overwrites the catalog with freshly loaded exercises.
func Import(ctx context.Context, repo Repository, loader *Loader) ([]types.Exercise, error) {
	exercises, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load exercises: %w", err)
	}
	if err := repo.ReplaceAll(ctx, exercises); err != nil {
		return nil, fmt.Errorf("write catalog: %w", err)
	}
	return exercises, nil
}

// Categories lists the distinct categories in first-seen order.
func Categories(exercises []types.Exercise) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, ex := range exercises {
		if ex.Category == "" || seen[ex.Category] {
			continue
		}
		seen[ex.Category] = true
		out = append(out, ex.Category)
	}
	return out
}

// Muscles lists the distinct primary muscles in first-seen order.
func Muscles(exercises []types.Exercise) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, ex := range exercises {
		for _, m := range ex.PrimaryMuscles {
			if m == "" || seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}
