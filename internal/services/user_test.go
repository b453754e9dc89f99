package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/arjohnson15/workoutapp/internal/auth"
	"github.com/arjohnson15/workoutapp/internal/services"
	"github.com/arjohnson15/workoutapp/internal/store"
)

func newUserService(r repos) (*services.UserService, *auth.Provider) {
	tokens := auth.NewProvider("test-secret", time.Hour)
	return services.NewUserService(r.users, r.settings, tokens, bcrypt.MinCost), tokens
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	svc, tokens := newUserService(r)

	username := gofakeit.Username()
	password := gofakeit.Password(true, true, true, false, false, 12)

	user, err := svc.Register(ctx, "  "+username+" ", password)
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, username, user.Username)
	assert.NotEqual(t, password, user.PasswordHash)

	token, loggedIn, err := svc.Login(ctx, username, password)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	identity, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, username, identity.Username)

	settings, err := r.settings.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, settings.WeeklyPlan, 7)
}

func TestUserService_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	svc, _ := newUserService(r)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "missing username", password: "secret"},
		{name: "blank username", username: "   ", password: "secret"},
		{name: "missing password", username: "alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, services.ErrMissingCredentials)
		})
	}

	_, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, store.ErrDuplicateUsername)
}

func TestUserService_LoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	svc, _ := newUserService(r)

	_, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "ALICE", "secret")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, gofakeit.Username()+"-unknown", "secret")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestUserService_SequentialIDs(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	svc, _ := newUserService(r)

	for want := 1; want <= 5; want++ {
		user, err := svc.Register(ctx, gofakeit.Username()+gofakeit.DigitN(6), "pw")
		require.NoError(t, err)
		assert.Equal(t, want, user.ID)

		got, err := svc.GetByID(ctx, want)
		require.NoError(t, err)
		assert.Equal(t, user.Username, got.Username)
	}
}
