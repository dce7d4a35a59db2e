package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bryokn/ClassiConnect/internal/entity"
	"github.com/bryokn/ClassiConnect/internal/port/repository"
)

type ChatUseCase struct {
	chatRepo repository.ChatRepository
	logger   *zap.Logger
}

func NewChatUseCase(cr repository.ChatRepository, log *zap.Logger) *ChatUseCase {
	return &ChatUseCase{chatRepo: cr, logger: log}
}

type SendMessageInput struct {
	SenderID   string
	ReceiverID string
	ListingID  string
	Message    string
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, input SendMessageInput) (*entity.ChatMessage, error) {
	if input.Message == "" || input.ReceiverID == "" || input.ListingID == "" {
		return nil, fmt.Errorf("%w: message, receiver and listing id are required", ErrValidation)
	}
	if input.SenderID == "" {
		return nil, fmt.Errorf("%w: identity is required", ErrUnauthenticated)
	}

	now := time.Now()
	msg := &entity.ChatMessage{
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		ListingID:  input.ListingID,
		Message:    input.Message,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	id, err := uc.chatRepo.Create(ctx, msg)
	if err != nil {
		uc.logger.Error("Failed to store chat message",
			zap.Error(err), zap.String("listing_id", input.ListingID), zap.String("sender_id", input.SenderID))
		return nil, fmt.Errorf("ChatUseCase.SendMessage: %w", err)
	}
	msg.ID = id
	return msg, nil
}

// GetMessages returns the listing's conversation scoped to the caller:
// only messages the user sent or received, newest first. Reading the
// conversation marks the caller's received messages as read; a failed mark
// never blocks the read itself.
func (uc *ChatUseCase) GetMessages(ctx context.Context, listingID, userID string) ([]*entity.ChatMessage, error) {
	if listingID == "" {
		return nil, fmt.Errorf("%w: listing id is required", ErrValidation)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: identity is required", ErrUnauthenticated)
	}

	if err := uc.chatRepo.MarkReceivedRead(ctx, listingID, userID); err != nil {
		uc.logger.Warn("Failed to mark chat messages read",
			zap.Error(err), zap.String("listing_id", listingID), zap.String("user_id", userID))
	}

	messages, err := uc.chatRepo.GetByListingForUser(ctx, listingID, userID)
	if err != nil {
		uc.logger.Error("Failed to fetch chat messages",
			zap.Error(err), zap.String("listing_id", listingID), zap.String("user_id", userID))
		return nil, fmt.Errorf("ChatUseCase.GetMessages: %w", err)
	}
	return messages, nil
}
