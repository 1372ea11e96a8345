package service

import (
	"context"
	"testing"
	"time"

	"studyhub_backend/internal/config"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository/memory"
	"studyhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const authSecret = "service-test-secret-service-test-secret"

func newAuthService(store *memory.Store) *AuthService {
	cfg := &config.Config{
		JWT:   config.JWTConfig{Secret: authSecret, ExpireTime: time.Hour},
		Auth:  config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Admin: config.AdminConfig{Email: "Root@Example.com"},
	}
	return NewAuthService(store.Users(), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	store := memory.New()
	svc := newAuthService(store)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Username: "lily", Email: "Lily@Example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "lily@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "password1", user.Password)

	_, err = svc.Register(ctx, RegisterRequest{Username: "other", Email: "lily@example.com", Password: "password1"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
	_, err = svc.Register(ctx, RegisterRequest{Username: "lily", Email: "new@example.com", Password: "password1"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	res, err := svc.Login(ctx, LoginRequest{Login: "LILY@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, user.ID, res.User.ID)

	res, err = svc.Login(ctx, LoginRequest{Login: "lily", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Login: "lily", Password: "wrong-password"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, err = svc.Login(ctx, LoginRequest{Login: "nobody", Password: "password1"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	resolved, err := svc.ResolveIdentity(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestRegisterRolePolicy(t *testing.T) {
	store := memory.New()
	svc := newAuthService(store)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterRequest{Username: "sneaky", Email: "s@example.com", Password: "password1", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, u.Role)

	root, err := svc.Register(ctx, RegisterRequest{Username: "root", Email: "root@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, root.Role)

	svc.Auth.AllowRoleOnRegister = true
	open, err := svc.Register(ctx, RegisterRequest{Username: "open", Email: "o@example.com", Password: "password1", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, open.Role)
}

func TestResolveIdentity(t *testing.T) {
	store := memory.New()
	svc := newAuthService(store)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Username: "kim", Email: "kim@example.com", Password: "password1"})
	require.NoError(t, err)

	valid, err := util.GenerateJWT(user, authSecret, time.Hour)
	require.NoError(t, err)
	expired, err := util.GenerateJWT(user, authSecret, -time.Minute)
	require.NoError(t, err)
	foreign, err := util.GenerateJWT(user, "some-other-secret-some-other-secret", time.Hour)
	require.NoError(t, err)

	ghost := &model.User{Username: "ghost", Role: model.RoleUser}
	ghost.ID = 999
	orphan, err := util.GenerateJWT(ghost, authSecret, time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", util.ErrUnauthenticated},
		{"malformed", "abc.def", util.ErrUnauthenticated},
		{"expired", expired, util.ErrTokenExpired},
		{"bad signature", foreign, util.ErrForbidden},
		{"deleted user", orphan, util.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := svc.ResolveIdentity(ctx, tc.token)
			assert.Nil(t, u)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	u, err := svc.ResolveIdentity(ctx, valid)
	require.NoError(t, err)
	assert.Equal(t, "kim", u.Username)

	store.Users().Delete(user.ID)
	_, err = svc.ResolveIdentity(ctx, valid)
	assert.ErrorIs(t, err, util.ErrForbidden)
}

func TestChangePassword(t *testing.T) {
	store := memory.New()
	svc := newAuthService(store)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Username: "max", Email: "max@example.com", Password: "password1"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{OldPassword: "nope-nope", NewPassword: "password2"})
	assert.ErrorIs(t, err, util.ErrValidation)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{OldPassword: "password1", NewPassword: "password2"}))
	_, err = svc.Login(ctx, LoginRequest{Login: "max", Password: "password2"})
	assert.NoError(t, err)
}
