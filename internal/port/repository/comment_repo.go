package repository

import (
	"context"

	"github.com/bryokn/ClassiConnect/internal/entity"
)

type CommentReaction string

const (
	ReactionLike    CommentReaction = "like"
	ReactionDislike CommentReaction = "dislike"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	GetByListingID(ctx context.Context, listingID string) ([]*entity.Comment, error)
	// React atomically increments the counter named by the reaction and
	// returns the updated comment.
	React(ctx context.Context, id string, reaction CommentReaction) (*entity.Comment, error)
}
