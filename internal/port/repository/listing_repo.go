package repository

import (
	"context"

	"github.com/bryokn/ClassiConnect/internal/entity"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	List(ctx context.Context) ([]*entity.Listing, error)
	// IncrementLikes and IncrementImpressions are single atomic
	// add-and-return operations; concurrent calls must not lose updates.
	IncrementLikes(ctx context.Context, id string) (int64, error)
	IncrementImpressions(ctx context.Context, id string) (int64, error)
	// AddImageURL appends an uploaded photo URL to the listing.
	AddImageURL(ctx context.Context, id, url string) error
}
