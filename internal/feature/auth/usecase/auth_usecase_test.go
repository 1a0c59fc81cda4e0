package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"logsearch_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of UserRepository.
type mockUserRepository struct {
	createFn         func(ctx context.Context, user *entity.User) error
	findByUsernameFn func(ctx context.Context, username string) (*entity.User, error)
	findByEmailFn    func(ctx context.Context, email string) (*entity.User, error)
	findByIDFn       func(ctx context.Context, id string) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, ErrUserNotFound
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	var created *entity.User
	repo := &mockUserRepository{
		createFn: func(ctx context.Context, user *entity.User) error {
			created = user
			return nil
		},
	}

	uc := NewAuthUsecase(repo)
	user, err := uc.Register(context.Background(), "alice", "alice@example.com", "secret123")

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	// The stored hash must verify against the plaintext and never equal it.
	assert.NotEqual(t, "secret123", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret123")))
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"empty username", "", "a@example.com", "secret123"},
		{"empty email", "alice", "", "secret123"},
		{"empty password", "alice", "a@example.com", ""},
		{"short username", "ab", "a@example.com", "secret123"},
		{"short password", "alice", "a@example.com", "12345"},
	}

	uc := NewAuthUsecase(&mockUserRepository{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := uc.Register(context.Background(), tt.username, tt.email, tt.password)
			assert.Error(t, err)
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepository{
		findByUsernameFn: func(ctx context.Context, username string) (*entity.User, error) {
			return &entity.User{Username: username}, nil
		},
	}

	uc := NewAuthUsecase(repo)
	_, err := uc.Register(context.Background(), "alice", "new@example.com", "secret123")

	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{Email: email}, nil
		},
	}

	uc := NewAuthUsecase(repo)
	_, err := uc.Register(context.Background(), "alice", "taken@example.com", "secret123")

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegister_IndexCollisionWins(t *testing.T) {
	t.Parallel()

	// Pre-checks pass but the unique index rejects the insert: the index is
	// the authoritative guard.
	repo := &mockUserRepository{
		createFn: func(ctx context.Context, user *entity.User) error {
			return ErrUsernameAlreadyExists
		},
	}

	uc := NewAuthUsecase(repo)
	_, err := uc.Register(context.Background(), "alice", "alice@example.com", "secret123")

	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	existing := &entity.User{ID: "u1", Username: "alice", PasswordHash: string(hash)}
	repo := &mockUserRepository{
		findByUsernameFn: func(ctx context.Context, username string) (*entity.User, error) {
			if username == "alice" {
				return existing, nil
			}
			return nil, ErrUserNotFound
		},
	}
	uc := NewAuthUsecase(repo)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"valid credentials", "alice", "secret123", nil},
		{"wrong password", "alice", "wrong", ErrInvalidCredentials},
		{"unknown user", "mallory", "secret123", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			user, err := uc.Authenticate(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u1", user.ID)
		})
	}
}

func TestAuthenticate_RepositoryError(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepository{
		findByUsernameFn: func(ctx context.Context, username string) (*entity.User, error) {
			return nil, errors.New("network down")
		},
	}

	uc := NewAuthUsecase(repo)
	_, err := uc.Authenticate(context.Background(), "alice", "secret123")

	// Internal failures still surface as the generic credential error.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
