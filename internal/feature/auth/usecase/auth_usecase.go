package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"logsearch_backend/internal/feature/auth/domain/entity"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// UserRepository abstracts persistence for user entities. Following Go
// convention the interface is defined by the consumer (usecase), not the
// provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrUsernameAlreadyExists or
	// ErrEmailAlreadyExists on a unique-index collision.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername returns the user with the given username, or
	// ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail returns the user with the given email, or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns the user with the given ID, or ErrUserNotFound.
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// authUsecase implements registration and authentication.
type authUsecase struct {
	users UserRepository
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(users UserRepository) *authUsecase {
	return &authUsecase{users: users}
}

// validateRegistration checks the registration form constraints.
func validateRegistration(username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return errors.New("all fields are required")
	}
	if len(username) < minUsernameLength {
		return fmt.Errorf("username must be at least %d characters long", minUsernameLength)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Register creates a new user with a bcrypt-hashed password. Duplicates are
// pre-checked for friendlier errors; the unique indexes in the document store
// remain the authoritative guard.
func (u *authUsecase) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	if err := validateRegistration(username, email, password); err != nil {
		return nil, err
	}

	if _, err := u.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the username/password pair and returns the user on
// success. A bcrypt comparison runs even when the user does not exist, so the
// response time does not reveal which usernames are registered.
func (u *authUsecase) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := u.users.FindByUsername(ctx, username)

	// Dummy hash keeps bcrypt.CompareHashAndPassword on every code path.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.PasswordHash
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID returns the user with the given ID.
func (u *authUsecase) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}
