package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/blog-go/apperror"
	"github.com/user/blog-go/auth"
	"github.com/user/blog-go/config"
	"github.com/user/blog-go/memstore"
)

var testAuthConfig = config.AuthConfig{
	JWTSecret:            "test-secret",
	AccessTokenDuration:  15 * time.Minute,
	RefreshTokenDuration: time.Hour,
}

func newAuthService(t *testing.T, cfg config.AuthConfig) (*auth.AuthService, *memstore.Store) {
	t.Helper()
	log, _ := test.NewNullLogger()
	store := memstore.New()
	return auth.NewAuthService(store, cfg, log), store
}

func register(t *testing.T, svc *auth.AuthService) *auth.User {
	t.Helper()
	u, err := svc.Register(context.Background(), auth.RegisterRequest{
		Username: "alice",
		Email:    " Alice@Example.com ",
		Password: "correct horse",
	})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	svc, store := newAuthService(t, testAuthConfig)
	u := register(t, svc)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	stored, err := store.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", stored.HashedPassword)

	_, err = svc.Register(context.Background(), auth.RegisterRequest{Username: "alice", Email: "other@example.com", Password: "password123"})
	assert.True(t, apperror.IsConflictError(err))

	_, err = svc.Register(context.Background(), auth.RegisterRequest{Username: "bob", Email: "alice@example.com", Password: "password123"})
	assert.True(t, apperror.IsConflictError(err))
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t, testAuthConfig)
	_, err := svc.Register(context.Background(), auth.RegisterRequest{Username: "a b", Email: "nope", Password: "short"})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.ValidationError, appErr.Type)
	assert.Len(t, appErr.Details, 3)
}

func TestLoginByUsernameOrEmail(t *testing.T) {
	svc, _ := newAuthService(t, testAuthConfig)
	u := register(t, svc)

	for _, login := range []string{"alice", "ALICE@example.com"} {
		resp, err := svc.Login(context.Background(), auth.LoginRequest{Login: login, Password: "correct horse"})
		require.NoError(t, err, login)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, int64(900), resp.ExpiresIn)
		assert.Equal(t, &auth.UserSummary{ID: u.ID, Username: "alice"}, resp.User)

		id, err := svc.VerifyAccessToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, auth.Identity{UserID: u.ID, Username: "alice"}, id)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t, testAuthConfig)
	register(t, svc)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Login: "alice", Password: "wrong"})
	assert.True(t, apperror.IsAuthError(err))

	_, err = svc.Login(context.Background(), auth.LoginRequest{Login: "nobody", Password: "whatever"})
	assert.True(t, apperror.IsAuthError(err))
	assert.EqualError(t, err, "invalid credentials")
}

func TestRefreshToken(t *testing.T) {
	svc, _ := newAuthService(t, testAuthConfig)
	register(t, svc)
	tokens, err := svc.Login(context.Background(), auth.LoginRequest{Login: "alice", Password: "correct horse"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	_, err = svc.VerifyAccessToken(refreshed.AccessToken)
	assert.NoError(t, err)

	// Access tokens are not refresh tokens and vice versa.
	_, err = svc.RefreshToken(context.Background(), tokens.AccessToken)
	assert.True(t, apperror.IsAuthError(err))
	_, err = svc.VerifyAccessToken(tokens.RefreshToken)
	assert.Error(t, err)
}

func TestVerifyAccessTokenRejectsForeignAndExpiredTokens(t *testing.T) {
	svc, _ := newAuthService(t, testAuthConfig)
	register(t, svc)
	tokens, err := svc.Login(context.Background(), auth.LoginRequest{Login: "alice", Password: "correct horse"})
	require.NoError(t, err)

	other, _ := newAuthService(t, config.AuthConfig{JWTSecret: "different", AccessTokenDuration: time.Minute})
	_, err = other.VerifyAccessToken(tokens.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	expiring, _ := newAuthService(t, config.AuthConfig{JWTSecret: "s", AccessTokenDuration: -time.Minute, RefreshTokenDuration: time.Hour})
	register(t, expiring)
	expired, err := expiring.Login(context.Background(), auth.LoginRequest{Login: "alice", Password: "correct horse"})
	require.NoError(t, err)
	_, err = expiring.VerifyAccessToken(expired.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
