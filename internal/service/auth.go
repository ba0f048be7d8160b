package service

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"blogbackend/internal/auth"
	"blogbackend/internal/models"
	"blogbackend/internal/repository"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so callers cannot tell registered accounts from unregistered ones.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService interface {
	Register(email, password string) (*models.User, error)
	Login(email, password string) (string, time.Time, error)
	CurrentUser(id int64) (*models.User, error)
}

type authService struct {
	users  repository.UserRepository
	hasher *auth.Hasher
	tokens *auth.TokenManager
	logger *zap.Logger
}

func NewAuthService(users repository.UserRepository, hasher *auth.Hasher, tokens *auth.TokenManager, logger *zap.Logger) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new User-role account. The email pre-check is advisory;
// a concurrent registration slipping past it is caught by the unique index
// and reported the same way.
func (s *authService) Register(email, password string) (*models.User, error) {
	_, err := s.users.GetByEmail(email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("Failed to check existing user", zap.Error(err))
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := s.hasher.Hash(email, password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrUserAlreadyExists
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.Int64("id", user.ID))
	return user, nil
}

// Login verifies the credentials and issues a bearer token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *authService) Login(email, password string) (string, time.Time, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		s.logger.Error("Failed to get user by email", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if !s.hasher.Verify(user.Email, user.PasswordHash, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	tokenString, expiresAt, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User logged in", zap.Int64("id", user.ID))
	return tokenString, expiresAt, nil
}

func (s *authService) CurrentUser(id int64) (*models.User, error) {
	return s.users.GetByID(id)
}

// SeedAdmin ensures an Admin account with the given credentials exists.
// It is idempotent: an already-registered email is left untouched, including
// one created by a concurrent boot.
func SeedAdmin(users repository.UserRepository, hasher *auth.Hasher, email, password string, logger *zap.Logger) error {
	if email == "" || password == "" {
		logger.Info("Admin seeding skipped, no credentials configured")
		return nil
	}

	count, err := users.CountByRole(models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to count admin users: %w", err)
	}
	if count > 0 {
		return nil
	}

	passwordHash, err := hasher.Hash(email, password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	}

	if err := users.Create(admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Admin user seeded", zap.String("email", email))
	return nil
}
