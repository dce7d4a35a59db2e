package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bryokn/ClassiConnect/internal/entity"
	"github.com/bryokn/ClassiConnect/internal/port/repository"
)

type CommentUseCase struct {
	commentRepo repository.CommentRepository
	listingRepo repository.ListingRepository
	logger      *zap.Logger
}

func NewCommentUseCase(cr repository.CommentRepository, lr repository.ListingRepository, log *zap.Logger) *CommentUseCase {
	return &CommentUseCase{
		commentRepo: cr,
		listingRepo: lr,
		logger:      log,
	}
}

type AddCommentInput struct {
	ListingID string
	Text      string
	Username  string
}

func (uc *CommentUseCase) AddComment(ctx context.Context, input AddCommentInput) (*entity.Comment, error) {
	if input.ListingID == "" || input.Text == "" || input.Username == "" {
		return nil, fmt.Errorf("%w: listing, text and username are required", ErrValidation)
	}

	comment := &entity.Comment{
		ListingID: input.ListingID,
		Text:      input.Text,
		Username:  input.Username,
		Date:      time.Now(),
	}

	id, err := uc.commentRepo.Create(ctx, comment)
	if err != nil {
		uc.logger.Error("Failed to create comment", zap.Error(err), zap.String("listing_id", input.ListingID))
		return nil, fmt.Errorf("CommentUseCase.AddComment: %w", err)
	}
	comment.ID = id

	uc.populateListing(ctx, comment)
	return comment, nil
}

// ListComments returns the listing's comments in ascending date order, so
// repeated reads see a deterministic sequence.
func (uc *CommentUseCase) ListComments(ctx context.Context, listingID string) ([]*entity.Comment, error) {
	if listingID == "" {
		return nil, fmt.Errorf("%w: listing id is required", ErrValidation)
	}

	comments, err := uc.commentRepo.GetByListingID(ctx, listingID)
	if err != nil {
		uc.logger.Error("Failed to list comments", zap.Error(err), zap.String("listing_id", listingID))
		return nil, fmt.Errorf("CommentUseCase.ListComments: %w", err)
	}

	for _, c := range comments {
		uc.populateListing(ctx, c)
	}
	return comments, nil
}

// React bumps the like or dislike counter by one. There is no per-user
// dedup: any caller may react repeatedly, matching the feed behavior.
func (uc *CommentUseCase) React(ctx context.Context, commentID string, action string) (*entity.Comment, error) {
	if commentID == "" {
		return nil, fmt.Errorf("%w: comment id is required", ErrValidation)
	}

	reaction := repository.CommentReaction(action)
	if reaction != repository.ReactionLike && reaction != repository.ReactionDislike {
		return nil, fmt.Errorf("%w: action must be like or dislike", ErrValidation)
	}

	comment, err := uc.commentRepo.React(ctx, commentID, reaction)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: comment not found", ErrNotFound)
		}
		uc.logger.Error("Failed to apply comment reaction",
			zap.Error(err), zap.String("comment_id", commentID), zap.String("action", action))
		return nil, fmt.Errorf("CommentUseCase.React: %w", err)
	}
	return comment, nil
}

func (uc *CommentUseCase) populateListing(ctx context.Context, c *entity.Comment) {
	listing, err := uc.listingRepo.GetByID(ctx, c.ListingID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Warn("Failed to populate comment listing",
				zap.Error(err), zap.String("comment_id", c.ID))
		}
		return
	}
	c.Listing = listing
}
