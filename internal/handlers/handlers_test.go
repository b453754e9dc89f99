package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"

	"github.com/arjohnson15/workoutapp/internal/auth"
	"github.com/arjohnson15/workoutapp/internal/catalog"
	"github.com/arjohnson15/workoutapp/internal/docstore"
	"github.com/arjohnson15/workoutapp/internal/handlers"
	"github.com/arjohnson15/workoutapp/internal/services"
	"github.com/arjohnson15/workoutapp/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// 2024-06-12 is a Wednesday.
var testNow = time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

type testEnv struct {
	router    http.Handler
	tokens    *auth.Provider
	exercises *store.ExerciseRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := docstore.NewMemoryStore()
	now := func() time.Time { return testNow }

	users := store.NewUserRepository(mem)
	exercises := store.NewExerciseRepository(mem)
	workouts := store.NewWorkoutRepository(mem)
	settings := store.NewSettingsRepository(mem)
	require.NoError(t, exercises.ReplaceAll(context.Background(), catalog.Builtin()))

	tokens := auth.NewProvider("handler-secret", time.Hour).WithClock(now)
	authMiddleware := handlers.RequireAuth(tokens)
	userService := services.NewUserService(users, settings, tokens, bcrypt.MinCost)
	planService := services.NewPlanService(settings).WithClock(now)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		handlers.AuthRouter(r, userService, authMiddleware, nil)
		r.Route("/exercises", func(r chi.Router) {
			handlers.ExerciseRouter(r, services.NewExerciseService(exercises), authMiddleware)
		})
		r.Route("/workouts", func(r chi.Router) {
			handlers.WorkoutRouter(r, services.NewWorkoutService(workouts, exercises).WithClock(now), authMiddleware)
		})
		r.Route("/settings", func(r chi.Router) {
			handlers.SettingsRouter(r, planService, authMiddleware)
		})
		r.Route("/plan", func(r chi.Router) {
			handlers.PlanRouter(r, planService, authMiddleware)
		})
		r.Route("/analytics", func(r chi.Router) {
			handlers.AnalyticsRouter(r, services.NewAnalyticsService(workouts).WithClock(now), authMiddleware)
		})
	})
	r.Get("/healthz", handlers.Healthz)

	return &testEnv{router: r, tokens: tokens, exercises: exercises}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// signup registers username and returns a bearer token for it.
func (e *testEnv) signup(t *testing.T, username string) string {
	t.Helper()
	creds := map[string]string{"username": username, "password": "pw-" + username}
	rr := e.do(t, http.MethodPost, "/api/register", "", creds)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = e.do(t, http.MethodPost, "/api/login", "", creds)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp handlers.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Token
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func assertError(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	assert.Equal(t, status, rr.Code)
	assert.JSONEq(t, `{"error":`+mustJSON(t, message)+`}`, rr.Body.String())
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}
