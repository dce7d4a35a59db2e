package repository

import (
	"context"

	"github.com/bryokn/ClassiConnect/internal/entity"
)

// InteractionRepository stores the per-(listing, user) side records. The
// collection carries a unique index on (listing_id, user_id, kind) for
// abuse reports and active callback requests, so a concurrent duplicate
// insert surfaces as ErrConflict instead of a second record.
type InteractionRepository interface {
	// UpsertAvailability creates or overwrites the availability record for
	// the pair, setting is_available=false and marked_by=userID.
	UpsertAvailability(ctx context.Context, listingID, userID string) (*entity.Interaction, error)

	// CreateReport inserts a pending abuse report. Returns ErrConflict if
	// the pair already has one.
	CreateReport(ctx context.Context, listingID, userID, content string) (*entity.Interaction, error)

	// CreateCallback inserts a pending callback request. Returns
	// ErrConflict while the pair has a request whose status is not
	// completed.
	CreateCallback(ctx context.Context, listingID, userID string) (*entity.Interaction, error)

	// CompleteCallback moves the pair's active callback request to
	// completed, unblocking future requests.
	CompleteCallback(ctx context.Context, listingID, userID string) error

	// FindActive returns the record that currently blocks (or, for
	// availability, describes) the pair under the given kind, or
	// ErrNotFound.
	FindActive(ctx context.Context, kind entity.InteractionKind, listingID, userID string) (*entity.Interaction, error)
}
