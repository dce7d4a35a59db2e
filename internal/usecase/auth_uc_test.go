package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bryokn/ClassiConnect/internal/entity"
	"github.com/bryokn/ClassiConnect/internal/port/repository"
)

const testSecret = "test-secret"

func TestAuthUseCase_Signup(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()

	input := SignupInput{
		Username:  "ada",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "s3cret-pass",
	}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		uc := NewAuthUseCase(userRepo, testSecret, time.Hour, logger)

		userRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
			// The stored hash must verify against the raw password and the
			// raw password itself must never reach the repository.
			return u.PasswordHash != input.Password &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)) == nil &&
				u.Role == entity.RoleCustomer &&
				u.UniqueID != ""
		})).Return("user1", nil).Once()

		user, err := uc.Signup(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "user1", user.ID)
		assert.Empty(t, user.PasswordHash, "hash is stripped from the response")
		assert.Equal(t, defaultProfileImage, user.ProfileImage)
		userRepo.AssertExpectations(t)
	})

	t.Run("DuplicateAccount", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		uc := NewAuthUseCase(userRepo, testSecret, time.Hour, logger)

		userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return("", repository.ErrDuplicate).Once()

		_, err := uc.Signup(ctx, input)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("MissingFields", func(t *testing.T) {
		uc := NewAuthUseCase(new(MockUserRepository), testSecret, time.Hour, logger)
		_, err := uc.Signup(ctx, SignupInput{Username: "ada"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestAuthUseCase_Login(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &entity.User{ID: "user1", Email: "ada@example.com", PasswordHash: string(hash)}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		uc := NewAuthUseCase(userRepo, testSecret, time.Hour, logger)

		storedCopy := *stored
		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(&storedCopy, nil).Once()

		out, err := uc.Login(ctx, "ada@example.com", "s3cret-pass")

		require.NoError(t, err)
		assert.NotEmpty(t, out.Token)
		assert.Equal(t, "user1", out.User.ID)
		assert.Empty(t, out.User.PasswordHash)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		uc := NewAuthUseCase(userRepo, testSecret, time.Hour, logger)

		storedCopy := *stored
		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(&storedCopy, nil).Once()

		_, err := uc.Login(ctx, "ada@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		uc := NewAuthUseCase(userRepo, testSecret, time.Hour, logger)

		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrNotFound).Once()

		_, err := uc.Login(ctx, "nobody@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAuthUseCase_ResolveToken(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("LoginTokenRoundTrip", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		uc := NewAuthUseCase(userRepo, testSecret, time.Hour, logger)

		stored := &entity.User{ID: "user1", Email: "ada@example.com", PasswordHash: string(hash)}
		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(stored, nil).Once()
		userRepo.On("GetByID", ctx, "user1").Return(&entity.User{ID: "user1", Email: "ada@example.com"}, nil).Once()

		out, err := uc.Login(ctx, "ada@example.com", "s3cret-pass")
		require.NoError(t, err)

		resolved, err := uc.ResolveToken(ctx, out.Token)
		require.NoError(t, err)
		assert.Equal(t, "user1", resolved.ID)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		issuer := NewAuthUseCase(userRepo, testSecret, -time.Minute, logger)

		stored := &entity.User{ID: "user1", Email: "ada@example.com", PasswordHash: string(hash)}
		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(stored, nil).Once()

		out, err := issuer.Login(ctx, "ada@example.com", "s3cret-pass")
		require.NoError(t, err)

		_, err = issuer.ResolveToken(ctx, out.Token)
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		issuer := NewAuthUseCase(userRepo, "other-secret", time.Hour, logger)
		verifier := NewAuthUseCase(userRepo, testSecret, time.Hour, logger)

		stored := &entity.User{ID: "user1", Email: "ada@example.com", PasswordHash: string(hash)}
		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(stored, nil).Once()

		out, err := issuer.Login(ctx, "ada@example.com", "s3cret-pass")
		require.NoError(t, err)

		_, err = verifier.ResolveToken(ctx, out.Token)
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		uc := NewAuthUseCase(new(MockUserRepository), testSecret, time.Hour, logger)
		_, err := uc.ResolveToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("EmptyToken", func(t *testing.T) {
		uc := NewAuthUseCase(new(MockUserRepository), testSecret, time.Hour, logger)
		_, err := uc.ResolveToken(ctx, "")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("DeletedUser", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		uc := NewAuthUseCase(userRepo, testSecret, time.Hour, logger)

		stored := &entity.User{ID: "user1", Email: "ada@example.com", PasswordHash: string(hash)}
		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(stored, nil).Once()
		userRepo.On("GetByID", ctx, "user1").Return(nil, repository.ErrNotFound).Once()

		out, err := uc.Login(ctx, "ada@example.com", "s3cret-pass")
		require.NoError(t, err)

		_, err = uc.ResolveToken(ctx, out.Token)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
