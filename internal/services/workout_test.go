package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjohnson15/workoutapp/internal/catalog"
	"github.com/arjohnson15/workoutapp/internal/docstore"
	"github.com/arjohnson15/workoutapp/internal/events"
	"github.com/arjohnson15/workoutapp/internal/metrics"
	"github.com/arjohnson15/workoutapp/internal/services"
	"github.com/arjohnson15/workoutapp/internal/store"
	"github.com/arjohnson15/workoutapp/types"
)

// steppingClock advances by one minute on every call.
func steppingClock(start time.Time) func() time.Time {
	current := start.Add(-time.Minute)
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func benchInput() services.LogWorkoutInput {
	return services.LogWorkoutInput{
		ExerciseID:   "1",
		ExerciseName: "Bench Press",
		Sets:         []types.Set{types.StrengthSet(8, 135)},
	}
}

func TestWorkoutService_AppendAssignsIDsAndDates(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.FixedZone("EST", -5*3600))
	svc := services.NewWorkoutService(r.workouts, r.exercises).WithClock(steppingClock(start))

	first, err := svc.Append(ctx, 1, benchInput())
	require.NoError(t, err)
	second, err := svc.Append(ctx, 2, benchInput())
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, time.UTC, first.Date.Location())
	assert.True(t, first.Date.Equal(start))
	assert.True(t, second.Date.After(first.Date))
}

func TestWorkoutService_AppendNormalizesInput(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	seedExercises(t, r, catalog.Builtin()...)
	svc := services.NewWorkoutService(r.workouts, r.exercises)

	// Exercise 64 is a cardio entry of the builtin catalog.
	treadmill, err := r.exercises.Get(ctx, "64")
	require.NoError(t, err)
	require.Equal(t, types.ExerciseTypeCardio, treadmill.Type)

	entry, err := svc.Append(ctx, 1, services.LogWorkoutInput{ExerciseID: "64", ExerciseName: treadmill.Name})
	require.NoError(t, err)
	assert.NotNil(t, entry.Sets)
	assert.Empty(t, entry.Sets)
	assert.Equal(t, types.ExerciseTypeCardio, entry.Type)

	unknown, err := svc.Append(ctx, 1, services.LogWorkoutInput{ExerciseID: "does-not-exist", ExerciseName: "Mystery"})
	require.NoError(t, err)
	assert.Empty(t, unknown.Type)

	explicit, err := svc.Append(ctx, 1, services.LogWorkoutInput{ExerciseID: "64", Type: types.ExerciseTypeStrength})
	require.NoError(t, err)
	assert.Equal(t, types.ExerciseTypeStrength, explicit.Type)
}

func TestWorkoutService_UserIsolation(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	svc := services.NewWorkoutService(r.workouts, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.Append(ctx, 1, benchInput())
		require.NoError(t, err)
	}
	_, err := svc.Append(ctx, 2, benchInput())
	require.NoError(t, err)

	mine, err := svc.ListForUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
	for _, e := range mine {
		assert.Equal(t, 1, e.UserID)
	}

	none, err := svc.ListForUser(ctx, 3)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestWorkoutService_ListForUserInRange(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := services.NewWorkoutService(r.workouts, nil).WithClock(steppingClock(start))

	for i := 0; i < 5; i++ {
		_, err := svc.Append(ctx, 1, benchInput())
		require.NoError(t, err)
	}

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		ids   []int
	}{
		{name: "unbounded", ids: []int{1, 2, 3, 4, 5}},
		{name: "inclusive bounds", start: ptr(start.Add(time.Minute)), end: ptr(start.Add(3 * time.Minute)), ids: []int{2, 3, 4}},
		{name: "start only", start: ptr(start.Add(4 * time.Minute)), ids: []int{5}},
		{name: "end only", end: ptr(start), ids: []int{1}},
		{name: "empty window", start: ptr(start.Add(time.Hour)), ids: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := svc.ListForUserInRange(ctx, 1, tt.start, tt.end)
			require.NoError(t, err)
			ids := make([]int, 0, len(entries))
			for _, e := range entries {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestWorkoutService_MostRecentForExercise(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := services.NewWorkoutService(r.workouts, nil).WithClock(steppingClock(now))

	_, err := svc.MostRecentForExercise(ctx, 1, "1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Append(ctx, 1, benchInput())
	require.NoError(t, err)
	latest, err := svc.Append(ctx, 1, services.LogWorkoutInput{ExerciseID: "1", Sets: []types.Set{types.StrengthSet(5, 155)}})
	require.NoError(t, err)
	_, err = svc.Append(ctx, 1, services.LogWorkoutInput{ExerciseID: "2"})
	require.NoError(t, err)
	_, err = svc.Append(ctx, 2, benchInput())
	require.NoError(t, err)

	got, err := svc.MostRecentForExercise(ctx, 1, "1")
	require.NoError(t, err)
	assert.Equal(t, latest.ID, got.ID)
}

func TestWorkoutService_MostRecentTieGoesToLaterEntry(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	svc := services.NewWorkoutService(r.workouts, nil).WithClock(fixedClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)))

	_, err := svc.Append(ctx, 1, benchInput())
	require.NoError(t, err)
	second, err := svc.Append(ctx, 1, benchInput())
	require.NoError(t, err)

	got, err := svc.MostRecentForExercise(ctx, 1, "1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestWorkoutService_Delete(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	pub := &recordingPublisher{}
	svc := services.NewWorkoutService(r.workouts, nil).WithPublisher(pub)

	entry, err := svc.Append(ctx, 1, benchInput())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, 2, entry.ID), store.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 1, entry.ID+10), store.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, 1, entry.ID))
	assert.ErrorIs(t, svc.Delete(ctx, 1, entry.ID), store.ErrNotFound)

	left, err := svc.ListForUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, left)

	// Ids are never handed out twice.
	next, err := svc.Append(ctx, 1, benchInput())
	require.NoError(t, err)
	assert.Greater(t, next.ID, entry.ID)

	require.Len(t, pub.events, 3)
	assert.Equal(t, events.WorkoutLogged, pub.events[0].Type)
	assert.Equal(t, events.WorkoutDeleted, pub.events[1].Type)
	assert.Equal(t, entry.ID, pub.events[1].WorkoutID)
	assert.Equal(t, events.WorkoutLogged, pub.events[2].Type)
}

func TestWorkoutService_PublishesAndCounts(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	pub := &recordingPublisher{}
	m, reg := metrics.NewTestManagerAndRegistry()
	svc := services.NewWorkoutService(r.workouts, nil).WithPublisher(pub).WithMetrics(m)

	entry, err := svc.Append(ctx, 4, services.LogWorkoutInput{
		ExerciseID:   "1",
		ExerciseName: "Bench Press",
		Sets:         []types.Set{types.StrengthSet(10, 100), types.StrengthSet(5, 120)},
	})
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	event := pub.events[0]
	assert.Equal(t, events.WorkoutLogged, event.Type)
	assert.Equal(t, entry.ID, event.WorkoutID)
	assert.Equal(t, 4, event.UserID)
	assert.Equal(t, 1600, event.Volume)

	assert.Equal(t, 1.0, counterValue(t, reg, "workoutapp_test_workouts_logged"))
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		var total float64
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	t.Fatalf("metric %s not registered", name)
	return 0
}

func TestWorkoutService_AppendKeepsNonCanonicalExerciseIDs(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	svc := services.NewWorkoutService(r.workouts, r.exercises)

	for _, id := range []types.ExerciseID{"007", "+5", "-0", "12"} {
		t.Run(string(id), func(t *testing.T) {
			entry, err := svc.Append(ctx, 1, services.LogWorkoutInput{ExerciseID: id, ExerciseName: "Odd"})
			require.NoError(t, err)
			assert.Equal(t, id, entry.ExerciseID)

			latest, err := svc.MostRecentForExercise(ctx, 1, id)
			require.NoError(t, err)
			assert.Equal(t, entry.ID, latest.ID)
		})
	}

	raw, err := r.mem.Read(ctx, docstore.Workouts)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"exerciseId": "007"`)
	assert.Contains(t, string(raw), `"exerciseId": "+5"`)
	assert.Contains(t, string(raw), `"exerciseId": 12`)
}
