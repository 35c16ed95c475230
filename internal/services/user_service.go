package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yoyo-backend/internal/auth"
	"yoyo-backend/internal/cache"
	"yoyo-backend/internal/models"
	"yoyo-backend/internal/repositories"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// LoginResult is the outcome of the first login step. When the account has
// 2FA enabled only TempToken is set and the client must follow up with a
// TOTP code.
type LoginResult struct {
	RequiresTOTP bool         `json:"requires_totp"`
	TempToken    string       `json:"temp_token,omitempty"`
	Token        string       `json:"token,omitempty"`
	User         *models.User `json:"user,omitempty"`
}

type UserService struct {
	Repo       *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{Repo: repo, JWTManager: jwtManager}
}

// Login verifies credentials. Valid credential pairs are cached in Redis so
// repeated logins skip the bcrypt compare.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, errors.New("account is deactivated")
	}

	if !cache.GetCachedAuth(ctx, email, req.Password) {
		if !auth.VerifyPassword(user.PasswordHash, req.Password) {
			return nil, ErrInvalidCredentials
		}
		cache.CacheAuth(ctx, email, req.Password)
	}

	if user.TOTPEnabled {
		temp, err := s.JWTManager.GenerateTempToken(user)
		if err != nil {
			return nil, err
		}
		return &LoginResult{RequiresTOTP: true, TempToken: temp}, nil
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

// IssueToken mints a full session token, used after 2FA verification.
func (s *UserService) IssueToken(ctx context.Context, userID int) (*LoginResult, error) {
	user, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, errors.New("name, email and password are required")
	}
	role := req.Role
	if role == "" {
		role = models.RoleViewer
	}
	if !models.IsValidRole(role) {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, _ := s.Repo.GetByEmail(ctx, email); existing != nil {
		return nil, errors.New("user with this email already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id int, req *models.UpdateUserRequest) (*models.User, error) {
	u, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Role != "" && !models.IsValidRole(req.Role) {
		return nil, fmt.Errorf("invalid role %q", req.Role)
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" {
		u.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Role != "" {
		u.Role = req.Role
	}
	u.IsActive = req.IsActive
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if req.Password != "" || !u.IsActive {
		cache.InvalidateAuth(ctx, u.Email)
	}
	return u, nil
}

// EnsureAdmin creates a bootstrap admin account when the users table is
// empty, so a fresh install can log in. No-op once any user exists.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	if email == "" || password == "" {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set on first run")
	}
	_, err = s.CreateUser(ctx, &models.CreateUserRequest{
		Name:     "Admin",
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	})
	return err
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.Get(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	u, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateAuth(ctx, u.Email)
	return nil
}
