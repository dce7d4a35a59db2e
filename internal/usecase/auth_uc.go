package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bryokn/ClassiConnect/internal/entity"
	"github.com/bryokn/ClassiConnect/internal/port/repository"
)

const defaultProfileImage = "https://example.com/default-image.jpg"

// AuthUseCase issues bearer tokens and resolves them back to accounts. Every
// mutating endpoint that requires identity goes through ResolveToken before
// touching storage.
type AuthUseCase struct {
	userRepo repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
}

func NewAuthUseCase(ur repository.UserRepository, secret string, tokenTTL time.Duration, log *zap.Logger) *AuthUseCase {
	return &AuthUseCase{
		userRepo: ur,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   log,
	}
}

type SignupInput struct {
	Username     string
	FirstName    string
	LastName     string
	Email        string
	Password     string
	PhoneNumber  string
	ReferralCode string
}

func (uc *AuthUseCase) Signup(ctx context.Context, input SignupInput) (*entity.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" ||
		input.FirstName == "" || input.LastName == "" {
		return nil, fmt.Errorf("%w: username, names, email and password are required", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("AuthUseCase.Signup: failed to hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		ProfileImage: defaultProfileImage,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleCustomer,
		PhoneNumber:  input.PhoneNumber,
		ReferralCode: input.ReferralCode,
		UniqueID:     uuid.New().String(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := uc.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username, email or phone already registered", ErrConflict)
		}
		uc.logger.Error("Failed to create user", zap.Error(err), zap.String("email", input.Email))
		return nil, fmt.Errorf("AuthUseCase.Signup: %w", err)
	}
	user.ID = id
	user.PasswordHash = ""
	return user, nil
}

type LoginOutput struct {
	Token string
	User  *entity.User
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*LoginOutput, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		uc.logger.Error("Failed to look up user by email", zap.Error(err))
		return nil, fmt.Errorf("AuthUseCase.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: password mismatch", ErrInvalidCredential)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"userId": user.ID,
		"iat":    now.Unix(),
		"exp":    now.Add(uc.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
	if err != nil {
		uc.logger.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID))
		return nil, fmt.Errorf("AuthUseCase.Login: failed to sign token: %w", err)
	}

	user.PasswordHash = ""
	return &LoginOutput{Token: token, User: user}, nil
}

// ResolveToken verifies the bearer token's signature and expiry, then
// resolves the embedded user id to an existing account.
func (uc *AuthUseCase) ResolveToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: no token provided", ErrUnauthenticated)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return uc.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: token verification failed", ErrInvalidCredential)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: malformed claims", ErrInvalidCredential)
	}
	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("%w: token carries no user id", ErrInvalidCredential)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		uc.logger.Error("Failed to resolve token user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("AuthUseCase.ResolveToken: %w", err)
	}
	return user, nil
}
