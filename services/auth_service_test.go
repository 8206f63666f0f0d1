package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-cms/config"
	"inkwell-cms/models"
	"inkwell-cms/testutils"
)

func newAuthService(users *testutils.UserStore) AuthService {
	return NewAuthService(users, config.JWTConfig{Secret: "test-secret", Expiration: time.Hour})
}

func TestRegisterAndLogin(t *testing.T) {
	users := testutils.NewUserStore()
	svc := newAuthService(users)
	ctx := context.Background()

	reg, err := svc.Register(ctx, models.RegisterRequest{Username: "alice", Email: "Alice@Example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "alice@example.com", reg.User.Email)
	assert.False(t, reg.User.IsWriter)
	assert.False(t, reg.User.IsAdmin)
	assert.NotEqual(t, "secret123", reg.User.Password)

	login, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	claims, err := svc.ParseToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newAuthService(testutils.NewUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Username: "alice", Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, models.RegisterRequest{Username: "alice", Email: "b@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestLoginFailures(t *testing.T) {
	users := testutils.NewUserStore()
	svc := newAuthService(users)
	ctx := context.Background()

	reg, err := svc.Register(ctx, models.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Username: "bob", Password: "wrong"})
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	assert.EqualError(t, err, "invalid credentials")

	_, err = svc.Login(ctx, models.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.EqualError(t, err, "invalid credentials")

	users.SetActive(reg.User.ID, false)
	_, err = svc.Login(ctx, models.LoginRequest{Username: "bob", Password: "secret123"})
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	assert.EqualError(t, err, "user not activated")
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	users := testutils.NewUserStore()
	issuer := NewAuthService(users, config.JWTConfig{Secret: "other-secret", Expiration: time.Hour})
	reg, err := issuer.Register(context.Background(), models.RegisterRequest{Username: "eve", Email: "eve@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = newAuthService(users).ParseToken(reg.Token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = newAuthService(users).ParseToken("not.a.token")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	users := testutils.NewUserStore()
	svc := NewAuthService(users, config.JWTConfig{Secret: "test-secret", Expiration: time.Hour}).(*authService)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	reg, err := svc.Register(context.Background(), models.RegisterRequest{Username: "old", Email: "old@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.ParseToken(reg.Token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}
