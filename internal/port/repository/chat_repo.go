package repository

import (
	"context"

	"github.com/bryokn/ClassiConnect/internal/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, msg *entity.ChatMessage) (string, error)
	// GetByListingForUser returns messages for the listing where the user
	// is sender or receiver, newest first.
	GetByListingForUser(ctx context.Context, listingID, userID string) ([]*entity.ChatMessage, error)
	// MarkReceivedRead flags every unread message the user received in the
	// listing's conversation as read.
	MarkReceivedRead(ctx context.Context, listingID, userID string) error
}
