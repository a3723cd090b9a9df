package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/quest-tracker-api/internal/models"
	"github.com/yukikurage/quest-tracker-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken = errors.New("user with this username already exists")
	ErrUserNotFound  = errors.New("this user doesn't exist")
	ErrWrongPassword = errors.New("invalid password")
)

// AuthService handles registration, login and account deletion.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// CredentialsInput holds a username and a plain-text password.
type CredentialsInput struct {
	Username string
	Password string
}

// Register validates the credentials, rejects taken usernames and stores a bcrypt hash.
func (s *AuthService) Register(ctx context.Context, input CredentialsInput) (*models.User, error) {
	if err := ValidateUsername(input.Username); err != nil {
		return nil, err
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(ctx context.Context, input CredentialsInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrWrongPassword
	}

	return user, nil
}

// DeleteAccount removes the user and, in the same transaction, every quest it owns.
func (s *AuthService) DeleteAccount(ctx context.Context, username string) error {
	if username == "" {
		return ErrUnauthorized
	}

	if err := s.userRepo.DeleteWithQuests(ctx, username); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
