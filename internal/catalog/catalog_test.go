package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjohnson15/workoutapp/internal/catalog"
	"github.com/arjohnson15/workoutapp/internal/docstore"
	"github.com/arjohnson15/workoutapp/internal/store"
	"github.com/arjohnson15/workoutapp/types"
)

const remoteBody = `[
  {"id":"3_4_Sit-Up","name":"3/4 Sit-Up","force":"pull","level":"beginner","mechanic":"compound","equipment":"body only",
   "primaryMuscles":["abdominals"],"secondaryMuscles":[],"instructions":["Lie down."],"category":"strength","images":["a.jpg"]},
  {"id":"Rowing_Stationary","name":"Rowing, Stationary","force":null,"level":"beginner","mechanic":null,"equipment":"machine",
   "primaryMuscles":["quadriceps"],"secondaryMuscles":["biceps"],"instructions":[],"category":"cardio","images":[]},
  {"id":"nameless","name":"","category":"strength"}
]`

func remoteServer(t *testing.T, status int, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBuiltin(t *testing.T) {
	exercises := catalog.Builtin()
	require.Len(t, exercises, 75)

	seen := make(map[types.ExerciseID]bool)
	cardio := 0
	for _, ex := range exercises {
		assert.True(t, ex.ID.IsNumeric())
		assert.False(t, seen[ex.ID])
		seen[ex.ID] = true
		if ex.Type == types.ExerciseTypeCardio {
			cardio++
			assert.Equal(t, "Cardio", ex.Category)
		}
	}
	assert.Equal(t, 12, cardio)
	assert.Equal(t, types.ExerciseID("1"), exercises[0].ID)
	assert.Equal(t, "Barbell Bench Press", exercises[0].Name)
	assert.Equal(t, []string{"Chest", "Back", "Shoulders", "Legs", "Biceps", "Triceps", "Abs", "Cardio"}, catalog.Categories(exercises))
}

func TestFetcher_Fetch(t *testing.T) {
	srv := remoteServer(t, http.StatusOK, remoteBody)

	exercises, err := catalog.NewFetcher(srv.Client(), srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, exercises, 2)

	assert.Equal(t, types.ExerciseID("3_4_Sit-Up"), exercises[0].ID)
	assert.Equal(t, types.ExerciseTypeStrength, exercises[0].Type)
	assert.Equal(t, []string{"abdominals"}, exercises[0].PrimaryMuscles)
	assert.Equal(t, "body only", exercises[0].Equipment)
	assert.Equal(t, types.ExerciseTypeCardio, exercises[1].Type)

	assert.Equal(t, []string{"abdominals", "quadriceps"}, catalog.Muscles(exercises))
}

func TestFetcher_Failures(t *testing.T) {
	ctx := context.Background()

	srv := remoteServer(t, http.StatusNotFound, "nope")
	_, err := catalog.NewFetcher(srv.Client(), srv.URL).Fetch(ctx)
	assert.ErrorContains(t, err, "unexpected status")

	srv = remoteServer(t, http.StatusOK, "<html>")
	_, err = catalog.NewFetcher(srv.Client(), srv.URL).Fetch(ctx)
	assert.ErrorContains(t, err, "parse exercises")
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	repo := store.NewExerciseRepository(docstore.NewMemoryStore())

	n, err := catalog.Bootstrap(ctx, repo, catalog.NewLoader(catalog.SourceBuiltin, nil))
	require.NoError(t, err)
	assert.Equal(t, 75, n)

	// A populated catalog is left alone.
	srv := remoteServer(t, http.StatusOK, remoteBody)
	n, err = catalog.Bootstrap(ctx, repo, catalog.NewLoader(catalog.SourceRemote, catalog.NewFetcher(srv.Client(), srv.URL)))
	require.NoError(t, err)
	assert.Equal(t, 75, n)
}

func TestBootstrap_FetchFailureLeavesCatalogEmpty(t *testing.T) {
	ctx := context.Background()
	repo := store.NewExerciseRepository(docstore.NewMemoryStore())
	srv := remoteServer(t, http.StatusInternalServerError, "")

	_, err := catalog.Bootstrap(ctx, repo, catalog.NewLoader(catalog.SourceRemote, catalog.NewFetcher(srv.Client(), srv.URL)))
	assert.Error(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImport_Overwrites(t *testing.T) {
	ctx := context.Background()
	repo := store.NewExerciseRepository(docstore.NewMemoryStore())
	require.NoError(t, repo.ReplaceAll(ctx, catalog.Builtin()))

	srv := remoteServer(t, http.StatusOK, remoteBody)
	imported, err := catalog.Import(ctx, repo, catalog.NewLoader(catalog.SourceRemote, catalog.NewFetcher(srv.Client(), srv.URL)))
	require.NoError(t, err)
	assert.Len(t, imported, 2)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLoader_UnknownSource(t *testing.T) {
	_, err := catalog.NewLoader("ftp", nil).Load(context.Background())
	assert.ErrorContains(t, err, `unknown exercise source "ftp"`)
}
