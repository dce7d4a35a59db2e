package repository

import (
	"context"

	"github.com/bryokn/ClassiConnect/internal/entity"
)

type UserRepository interface {
	// Create returns ErrDuplicate when username, email or phone number
	// collides with an existing account.
	Create(ctx context.Context, user *entity.User) (string, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
