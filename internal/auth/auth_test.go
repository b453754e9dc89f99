package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestProvider_IssueVerify(t *testing.T) {
	p := NewProvider("secret", 0)
	token, err := p.Issue(3, "alice")
	require.NoError(t, err)

	identity, err := p.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, 3, identity.UserID)
	assert.Equal(t, "alice", identity.Username)
}

func TestProvider_DefaultTTLIsSevenDays(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := issuedAt
	p := NewProvider("secret", 0).WithClock(func() time.Time { return clock })

	token, err := p.Issue(1, "alice")
	require.NoError(t, err)

	clock = issuedAt.Add(7*24*time.Hour - time.Minute)
	_, err = p.Verify(token)
	require.NoError(t, err)

	clock = issuedAt.Add(7*24*time.Hour + time.Minute)
	_, err = p.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestProvider_RejectsForeignTokens(t *testing.T) {
	token, err := NewProvider("other-secret", time.Hour).Issue(1, "alice")
	require.NoError(t, err)

	_, err = NewProvider("secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewProvider("secret", time.Hour).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestProvider_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{UserID: 1, Username: "alice"}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewProvider("secret", time.Hour).Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestProvider_RequiresPositiveUserID(t *testing.T) {
	p := NewProvider("secret", time.Hour)
	token, err := p.Issue(0, "ghost")
	require.NoError(t, err)

	_, err = p.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("pw1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", hash)
	assert.True(t, CheckPassword(hash, "pw1"))
	assert.False(t, CheckPassword(hash, "pw2"))
	assert.False(t, CheckPassword("not-a-hash", "pw1"))
}
