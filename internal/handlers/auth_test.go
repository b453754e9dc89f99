package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjohnson15/workoutapp/internal/auth"
	"github.com/arjohnson15/workoutapp/internal/handlers"
	"github.com/arjohnson15/workoutapp/types"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/register", "", map[string]string{"username": "alice", "password": "pw1"})
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"message":"User created successfully"}`, rr.Body.String())

	rr = env.do(t, http.MethodPost, "/api/register", "", map[string]string{"username": "alice", "password": "pw2"})
	assertError(t, rr, http.StatusBadRequest, "Username already exists")

	rr = env.do(t, http.MethodPost, "/api/register", "", map[string]string{"username": "bob"})
	assertError(t, rr, http.StatusBadRequest, "Username and password required")

	rr = env.do(t, http.MethodPost, "/api/register", "", "{not json")
	assertError(t, rr, http.StatusBadRequest, "Username and password required")
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, http.MethodPost, "/api/register", "", map[string]string{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[handlers.LoginResponse](t, rr)
	assert.Equal(t, "alice", resp.Username)

	identity, err := env.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, identity.UserID)

	rr = env.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": "alice", "password": "nope"})
	assertError(t, rr, http.StatusBadRequest, "Invalid credentials")

	rr = env.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": "mallory", "password": "pw1"})
	assertError(t, rr, http.StatusBadRequest, "Invalid credentials")
}

func TestRequireAuth(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice")

	rr := env.do(t, http.MethodGet, "/api/workouts", "", nil)
	assertError(t, rr, http.StatusUnauthorized, "Access denied")

	rr = env.do(t, http.MethodGet, "/api/workouts", "garbage", nil)
	assertError(t, rr, http.StatusForbidden, "Invalid token")

	foreign, err := auth.NewProvider("other-secret", time.Hour).Issue(1, "alice")
	require.NoError(t, err)
	rr = env.do(t, http.MethodGet, "/api/workouts", foreign, nil)
	assertError(t, rr, http.StatusForbidden, "Invalid token")

	expired, err := auth.NewProvider("handler-secret", time.Minute).
		WithClock(func() time.Time { return testNow.Add(-time.Hour) }).
		Issue(1, "alice")
	require.NoError(t, err)
	rr = env.do(t, http.MethodGet, "/api/workouts", expired, nil)
	assertError(t, rr, http.StatusForbidden, "Invalid token")

	rr = env.do(t, http.MethodGet, "/api/workouts", token, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice")

	rr := env.do(t, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password")
	user := decode[types.User](t, rr)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "alice", user.Username)

	ghost, err := env.tokens.Issue(42, "ghost")
	require.NoError(t, err)
	rr = env.do(t, http.MethodGet, "/api/me", ghost, nil)
	assertError(t, rr, http.StatusNotFound, "User not found")
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
