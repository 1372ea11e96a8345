package service

import (
	"context"
	"errors"
	"strings"

	"studyhub_backend/internal/config"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users UserStore
	JWT   config.JWTConfig
	Auth  config.AuthConfig
	Admin config.AdminConfig
}

func NewAuthService(users UserStore, cfg *config.Config) *AuthService {
	return &AuthService{
		Users: users,
		JWT:   cfg.JWT,
		Auth:  cfg.Auth,
		Admin: cfg.Admin,
	}
}

// RegisterRequest defines model for registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	// Login 可以是邮箱或用户名
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=72"`
}

type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) bcryptCost() int {
	if s.Auth.BcryptCost < bcrypt.MinCost {
		return bcrypt.DefaultCost
	}
	return s.Auth.BcryptCost
}

func (s *AuthService) roleFor(req RegisterRequest) model.UserRole {
	if s.Admin.IsAdminEmail(req.Email) {
		return model.RoleAdmin
	}
	if s.Auth.AllowRoleOnRegister && req.Role != "" {
		return model.UserRole(req.Role)
	}
	return model.RoleUser
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if _, err := s.Users.FindByEmail(ctx, email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, util.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Users.FindByUsername(ctx, username); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, util.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost())
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     s.roleFor(req),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		// 并发注册时由唯一索引兜底
		if errors.Is(err, util.ErrStorageConflict) {
			return nil, util.ErrEmailRegistered
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	login := strings.TrimSpace(req.Login)

	var (
		user *model.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = s.Users.FindByEmail(ctx, strings.ToLower(login))
	} else {
		user, err = s.Users.FindByUsername(ctx, login)
	}
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.JWT.Secret, s.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

// ResolveIdentity turns a bearer token into the user it names. Callers decide
// whether a failure is fatal or means an anonymous request.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, util.ErrUnauthenticated
	}

	claims, err := util.ParseJWT(token, s.JWT.Secret)
	if err != nil {
		return nil, err
	}

	user, err := s.Users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrForbidden
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, req ChangePasswordRequest) error {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return util.Invalid("old password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost())
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, userID, string(hashed))
}
