package service

import (
	"context"
	"testing"
	"time"

	"trackfit/fitness-api/internal/apperr"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-do-not-use"

func newAuthService() (AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewAuthService(repo, testJWTSecret, time.Hour), repo
}

func TestRegister_Succeeds(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	dob := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	user, token, err := svc.Register(ctx, "Ada", "Lovelace", "ada@example.com", "supersecret", dob)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Empty(t, user.PasswordHash, "hash must never leave the service")
	assert.False(t, user.ID.IsZero())
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Ada", "Lovelace", "ada@example.com", "supersecret", time.Time{})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "Imposter", "", "ada@example.com", "othersecret", time.Time{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegister_ShortPasswordIsValidation(t *testing.T) {
	svc, _ := newAuthService()

	_, _, err := svc.Register(context.Background(), "Ada", "", "ada@example.com", "short", time.Time{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestLogin_Roundtrip(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "Ada", "Lovelace", "ada@example.com", "supersecret", time.Time{})
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "ada@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	// The issued token must carry the user ID and verify with the
	// configured secret.
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, registered.ID.Hex(), claims.UserID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLogin_UnknownEmailIsNotFound(t *testing.T) {
	svc, _ := newAuthService()

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestLogin_WrongPasswordIsAuthError(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Ada", "", "ada@example.com", "supersecret", time.Time{})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrongpassword")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
}
