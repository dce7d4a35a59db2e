package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bryokn/ClassiConnect/internal/entity"
	"github.com/bryokn/ClassiConnect/internal/port/repository"
)

func TestCommentUseCase_AddComment(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		listingRepo := new(MockListingRepository)
		uc := NewCommentUseCase(commentRepo, listingRepo, logger)

		commentRepo.On("Create", ctx, mock.AnythingOfType("*entity.Comment")).Return("comment1", nil).Once()
		listingRepo.On("GetByID", ctx, "listing1").Return(&entity.Listing{ID: "listing1", ProductTitle: "Bike"}, nil).Once()

		comment, err := uc.AddComment(ctx, AddCommentInput{
			ListingID: "listing1",
			Text:      "still available?",
			Username:  "ada",
		})

		require.NoError(t, err)
		assert.Equal(t, "comment1", comment.ID)
		assert.Equal(t, "ada", comment.Username)
		require.NotNil(t, comment.Listing)
		assert.Equal(t, "Bike", comment.Listing.ProductTitle)
		commentRepo.AssertExpectations(t)
	})

	t.Run("MissingText", func(t *testing.T) {
		uc := NewCommentUseCase(new(MockCommentRepository), new(MockListingRepository), logger)
		_, err := uc.AddComment(ctx, AddCommentInput{ListingID: "listing1", Username: "ada"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("OrphanListingIsTolerated", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		listingRepo := new(MockListingRepository)
		uc := NewCommentUseCase(commentRepo, listingRepo, logger)

		commentRepo.On("Create", ctx, mock.AnythingOfType("*entity.Comment")).Return("comment1", nil).Once()
		listingRepo.On("GetByID", ctx, "gone").Return(nil, repository.ErrNotFound).Once()

		comment, err := uc.AddComment(ctx, AddCommentInput{ListingID: "gone", Text: "hi", Username: "ada"})

		require.NoError(t, err)
		assert.Nil(t, comment.Listing)
	})
}

func TestCommentUseCase_ListComments(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()

	commentRepo := new(MockCommentRepository)
	listingRepo := new(MockListingRepository)
	uc := NewCommentUseCase(commentRepo, listingRepo, logger)

	older := &entity.Comment{ID: "c1", ListingID: "listing1", Text: "first", Date: time.Now().Add(-time.Hour)}
	newer := &entity.Comment{ID: "c2", ListingID: "listing1", Text: "second", Date: time.Now()}
	commentRepo.On("GetByListingID", ctx, "listing1").Return([]*entity.Comment{older, newer}, nil).Once()
	listingRepo.On("GetByID", ctx, "listing1").Return(&entity.Listing{ID: "listing1"}, nil).Twice()

	comments, err := uc.ListComments(ctx, "listing1")

	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.True(t, comments[0].Date.Before(comments[1].Date))
	commentRepo.AssertExpectations(t)
}

func TestCommentUseCase_React(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()

	t.Run("LikeIncrements", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		uc := NewCommentUseCase(commentRepo, new(MockListingRepository), logger)

		updated := &entity.Comment{ID: "c1", Likes: 4}
		commentRepo.On("React", ctx, "c1", repository.ReactionLike).Return(updated, nil).Once()

		got, err := uc.React(ctx, "c1", "like")

		require.NoError(t, err)
		assert.Equal(t, int64(4), got.Likes)
	})

	t.Run("RepeatReactionsAllCount", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		uc := NewCommentUseCase(commentRepo, new(MockListingRepository), logger)

		commentRepo.On("React", ctx, "c1", repository.ReactionDislike).Return(&entity.Comment{ID: "c1", Dislikes: 1}, nil).Once()
		commentRepo.On("React", ctx, "c1", repository.ReactionDislike).Return(&entity.Comment{ID: "c1", Dislikes: 2}, nil).Once()

		_, err := uc.React(ctx, "c1", "dislike")
		require.NoError(t, err)
		got, err := uc.React(ctx, "c1", "dislike")
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.Dislikes)
	})

	t.Run("UnknownAction", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		uc := NewCommentUseCase(commentRepo, new(MockListingRepository), logger)

		_, err := uc.React(ctx, "c1", "love")

		assert.ErrorIs(t, err, ErrValidation)
		commentRepo.AssertNotCalled(t, "React", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CommentNotFound", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		uc := NewCommentUseCase(commentRepo, new(MockListingRepository), logger)

		commentRepo.On("React", ctx, "ghost", repository.ReactionLike).Return(nil, repository.ErrNotFound).Once()

		_, err := uc.React(ctx, "ghost", "like")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
