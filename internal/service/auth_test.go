package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minipos/minipos/internal/events"
	"github.com/minipos/minipos/internal/repo"
	"github.com/minipos/minipos/internal/tokens"
)

func newAuthEnv(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Repo: &repo.GormRepo{DB: InitTestDB(t)},
		Issuer: &tokens.Issuer{
			AccessSecret:  []byte("test-access-secret"),
			RefreshSecret: []byte("test-refresh-secret"),
		},
		Producer: events.NewProducer(nil),
	}
}

func TestSignup(t *testing.T) {
	t.Parallel()

	svc := newAuthEnv(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "Ann", "Ann@X.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ann@x.com", user.Email)
	assert.NotEqual(t, "secret", user.PasswordHash)

	_, err = svc.Signup(ctx, "", "", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestSignup_DuplicateEmailIsConflict(t *testing.T) {
	t.Parallel()

	svc := newAuthEnv(t)
	ctx := context.Background()

	first, err := svc.Signup(ctx, "Ann", "ann@x.com", "secret")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "Other Ann", "ann@x.com", "different")
	require.ErrorIs(t, err, ErrConflict)

	// The original user is untouched.
	stored, err := svc.Repo.GetUserByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "Ann", stored.Name)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Ann", "ann@x.com", "secret")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "ann@x.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, "Ann", res.User.Name)

	userID, err := svc.Issuer.ParseAccess(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)

	_, err = svc.Login(ctx, "ann@x.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, "nobody@x.com", "secret")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	svc := newAuthEnv(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "Ann", "ann@x.com", "secret")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "ann@x.com", "secret")
	require.NoError(t, err)

	access, err := svc.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)

	userID, err := svc.Issuer.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestRefresh_RejectsBadTokens(t *testing.T) {
	t.Parallel()

	svc := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Refresh(ctx, "garbage")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid refresh token")

	// An access token is not a refresh token.
	access, err := svc.Issuer.SignAccess("some-user")
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, access)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefresh_UserDeleted(t *testing.T) {
	t.Parallel()

	svc := newAuthEnv(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "Ann", "ann@x.com", "secret")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "ann@x.com", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Repo.DB.Delete(user).Error)

	_, err = svc.Refresh(ctx, res.RefreshToken)
	require.ErrorIs(t, err, ErrNotFound)
}
