package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bryokn/ClassiConnect/internal/entity"
	"github.com/bryokn/ClassiConnect/internal/port/repository"
)

const maxReportContentLen = 200

// InteractionUseCase implements the per-(listing, user) side records.
// All three operations share the same skeleton: identity already resolved
// by the caller, listing id required, then a kind-specific conflict policy.
// Availability upserts; abuse reports and callback requests reject repeats.
type InteractionUseCase struct {
	interactionRepo repository.InteractionRepository
	listingRepo     repository.ListingRepository
	publisher       EventPublisher
	logger          *zap.Logger
}

func NewInteractionUseCase(
	ir repository.InteractionRepository,
	lr repository.ListingRepository,
	pub EventPublisher,
	log *zap.Logger,
) *InteractionUseCase {
	return &InteractionUseCase{
		interactionRepo: ir,
		listingRepo:     lr,
		publisher:       pub,
		logger:          log,
	}
}

// MarkUnavailable records that userID marked the listing unavailable.
// Calling it again replaces the record in place.
func (uc *InteractionUseCase) MarkUnavailable(ctx context.Context, listingID, userID string) (*entity.Interaction, error) {
	if listingID == "" {
		return nil, fmt.Errorf("%w: listing id is required", ErrValidation)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: identity is required", ErrUnauthenticated)
	}

	record, err := uc.interactionRepo.UpsertAvailability(ctx, listingID, userID)
	if err != nil {
		uc.logger.Error("Failed to upsert availability",
			zap.Error(err), zap.String("listing_id", listingID), zap.String("user_id", userID))
		return nil, fmt.Errorf("InteractionUseCase.MarkUnavailable: %w", err)
	}
	return record, nil
}

// ReportAbuse files a pending abuse report. A second report by the same
// user for the same listing is a conflict.
func (uc *InteractionUseCase) ReportAbuse(ctx context.Context, listingID, userID, content string) (*entity.Interaction, error) {
	if listingID == "" || content == "" {
		return nil, fmt.Errorf("%w: listing id and report content are required", ErrValidation)
	}
	if len(content) > maxReportContentLen {
		return nil, fmt.Errorf("%w: report content exceeds %d characters", ErrValidation, maxReportContentLen)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: identity is required", ErrUnauthenticated)
	}

	record, err := uc.interactionRepo.CreateReport(ctx, listingID, userID, content)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: you have already reported this listing", ErrConflict)
		}
		uc.logger.Error("Failed to create abuse report",
			zap.Error(err), zap.String("listing_id", listingID), zap.String("user_id", userID))
		return nil, fmt.Errorf("InteractionUseCase.ReportAbuse: %w", err)
	}

	if uc.publisher != nil {
		if pubErr := uc.publisher.PublishListingReported(ctx, record); pubErr != nil {
			uc.logger.Warn("Failed to publish listing reported event",
				zap.Error(pubErr), zap.String("listing_id", listingID))
		}
	}
	return record, nil
}

// RequestCallback files a pending callback request. A new request is
// rejected while a non-completed one exists; completing the old one
// unblocks the pair.
func (uc *InteractionUseCase) RequestCallback(ctx context.Context, listingID, userID string) (*entity.Interaction, error) {
	if listingID == "" {
		return nil, fmt.Errorf("%w: listing id is required", ErrValidation)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: identity is required", ErrUnauthenticated)
	}

	record, err := uc.interactionRepo.CreateCallback(ctx, listingID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: you already have a pending callback request for this listing", ErrConflict)
		}
		uc.logger.Error("Failed to create callback request",
			zap.Error(err), zap.String("listing_id", listingID), zap.String("user_id", userID))
		return nil, fmt.Errorf("InteractionUseCase.RequestCallback: %w", err)
	}
	return record, nil
}

// CompleteCallback transitions the pair's active request to completed.
func (uc *InteractionUseCase) CompleteCallback(ctx context.Context, listingID, userID string) error {
	if listingID == "" || userID == "" {
		return fmt.Errorf("%w: listing id and user id are required", ErrValidation)
	}
	if err := uc.interactionRepo.CompleteCallback(ctx, listingID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: no active callback request", ErrNotFound)
		}
		uc.logger.Error("Failed to complete callback request",
			zap.Error(err), zap.String("listing_id", listingID), zap.String("user_id", userID))
		return fmt.Errorf("InteractionUseCase.CompleteCallback: %w", err)
	}
	return nil
}

// GetStatus reports whether an active (or, for availability, marked)
// record exists for the caller on the listing. Used by the client to
// render correct initial button state.
func (uc *InteractionUseCase) GetStatus(ctx context.Context, kind entity.InteractionKind, listingID, userID string) (bool, error) {
	if listingID == "" {
		return false, fmt.Errorf("%w: listing id is required", ErrValidation)
	}
	if userID == "" {
		return false, fmt.Errorf("%w: identity is required", ErrUnauthenticated)
	}

	_, err := uc.interactionRepo.FindActive(ctx, kind, listingID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		uc.logger.Error("Failed to query interaction status",
			zap.Error(err), zap.String("kind", string(kind)), zap.String("listing_id", listingID))
		return false, fmt.Errorf("InteractionUseCase.GetStatus: %w", err)
	}
	return true, nil
}
