package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/arjohnson15/workoutapp/types"
)

const defaultFetchTimeout = 30 * time.Second

// Fetcher downloads an exercise list in the free-exercise-db format.
type Fetcher struct {
	client *http.Client
	url    string
}

// NewFetcher returns a Fetcher for url. A nil client gets a 30s timeout.
func NewFetcher(client *http.Client, url string) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &Fetcher{client: client, url: url}
}

// Fetch downloads and decodes the remote list. Entries without a name are
// dropped; the exercise type is derived from the category.
func (f *Fetcher) Fetch(ctx context.Context) ([]types.Exercise, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download exercises: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("download exercises: unexpected status %s", resp.Status)
	}

	var remote []types.Exercise
	if err := json.NewDecoder(resp.Body).Decode(&remote); err != nil {
		return nil, fmt.Errorf("parse exercises: %w", err)
	}

	exercises := make([]types.Exercise, 0, len(remote))
	for _, ex := range remote {
		if strings.TrimSpace(ex.Name) == "" {
			continue
		}
		if ex.Type == "" {
			ex.Type = typeForCategory(ex.Category)
		}
		ex.IsCustom = false
		ex.CreatedBy = nil
		exercises = append(exercises, ex)
	}
	return exercises, nil
}

func typeForCategory(category string) types.ExerciseType {
	if strings.EqualFold(category, "cardio") {
		return types.ExerciseTypeCardio
	}
	return types.ExerciseTypeStrength
}
