package services

import (
	"context"
	"errors"
	"strings"

	"github.com/cmartsolutions/bookstore-api/models"
	"github.com/cmartsolutions/bookstore-api/repositories"
	"github.com/cmartsolutions/bookstore-api/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput carries the fields of a registration request
type RegisterInput struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UserService defines the account management operations
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListUnverified(ctx context.Context) ([]models.User, error)
	VerifyUser(ctx context.Context, id uuid.UUID) error
	UpdateRoles(ctx context.Context, id uuid.UUID, roles []string) error
}

type userService struct {
	repo   repositories.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(repo repositories.UserRepository, logger *zap.Logger) UserService {
	return &userService{
		repo:   repo,
		logger: logger,
	}
}

// Register creates a new unverified account with the default ReadOnly role
func (s *userService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, WrapValidation(err)
	}

	_, err := s.repo.GetByUsername(ctx, input.Username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, WrapInternal("failed to check username", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, WrapInternal("failed to hash password", err)
	}

	user := models.NewUser(input.Username, input.Email, string(hash))
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, WrapInternal("failed to create user", err)
	}

	s.logger.Info("new user registered", zap.String("username", user.Username))
	return user, nil
}

// GetUser returns a single user by ID
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, WrapInternal("failed to get user", err)
	}
	return user, nil
}

// ListUsers returns all accounts
func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, WrapInternal("failed to list users", err)
	}
	return users, nil
}

// ListUnverified returns accounts awaiting verification
func (s *userService) ListUnverified(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.ListUnverified(ctx)
	if err != nil {
		return nil, WrapInternal("failed to list unverified users", err)
	}
	return users, nil
}

// VerifyUser marks an account as verified
func (s *userService) VerifyUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetVerified(ctx, id, true); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return WrapInternal("failed to verify user", err)
	}

	s.logger.Info("user verified", zap.String("id", id.String()))
	return nil
}

// UpdateRoles replaces the account's role set. Blank entries are
// dropped and duplicates collapsed; an effectively empty set is rejected.
func (s *userService) UpdateRoles(ctx context.Context, id uuid.UUID, roles []string) error {
	seen := make(map[string]bool)
	cleaned := make([]string, 0, len(roles))
	for _, role := range roles {
		role = strings.TrimSpace(role)
		if role == "" || seen[role] {
			continue
		}
		seen[role] = true
		cleaned = append(cleaned, role)
	}
	if len(cleaned) == 0 {
		return ErrNoRoles
	}

	if err := s.repo.UpdateRoles(ctx, id, cleaned); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return WrapInternal("failed to update roles", err)
	}

	s.logger.Info("user roles updated",
		zap.String("id", id.String()),
		zap.Strings("roles", cleaned))
	return nil
}
