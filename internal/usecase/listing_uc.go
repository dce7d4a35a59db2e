package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bryokn/ClassiConnect/internal/entity"
	"github.com/bryokn/ClassiConnect/internal/port/cache"
	"github.com/bryokn/ClassiConnect/internal/port/repository"
)

type EventPublisher interface {
	PublishListingCreated(ctx context.Context, listing *entity.Listing) error
	PublishListingReported(ctx context.Context, report *entity.Interaction) error
}

type PhotoStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

type EmailSender interface {
	SendEmail(to []string, subject, body string) error
}

func listingCacheKey(id string) string {
	return fmt.Sprintf("listing:%s", id)
}

const listingCacheTTL = 5 * time.Minute

type ListingUseCase struct {
	listingRepo  repository.ListingRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	cacheRepo    cache.CacheRepository
	publisher    EventPublisher
	photos       PhotoStorage
	email        EmailSender
	logger       *zap.Logger
}

func NewListingUseCase(
	lr repository.ListingRepository,
	ur repository.UserRepository,
	cr repository.CategoryRepository,
	cacheRepo cache.CacheRepository,
	pub EventPublisher,
	photos PhotoStorage,
	email EmailSender,
	log *zap.Logger,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo:  lr,
		userRepo:     ur,
		categoryRepo: cr,
		cacheRepo:    cacheRepo,
		publisher:    pub,
		photos:       photos,
		email:        email,
		logger:       log,
	}
}

type CreateListingInput struct {
	SellerID         string
	ContactPhone     string
	ContactEmail     string
	ProductTitle     string
	Description      string
	ImageURLs        []string
	Price            string
	CategoryID       string
	SubcategoryID    string
	SpecializationID string
	Country          string
	ProductLocation  string
	Coordinates      [2]float64
	SellerTerms      string
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, input CreateListingInput) (*entity.Listing, error) {
	if input.ProductTitle == "" || input.Description == "" || input.Price == "" ||
		input.ProductLocation == "" {
		return nil, fmt.Errorf("%w: title, description, price and location are required", ErrValidation)
	}
	if len(input.ImageURLs) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", ErrValidation)
	}
	if input.CategoryID == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}

	if _, err := uc.categoryRepo.GetCategoryByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: category not found", ErrNotFound)
		}
		return nil, fmt.Errorf("ListingUseCase.CreateListing: failed to check category: %w", err)
	}
	if input.SubcategoryID != "" {
		if _, err := uc.categoryRepo.GetSubcategoryByID(ctx, input.SubcategoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: subcategory not found", ErrNotFound)
			}
			return nil, fmt.Errorf("ListingUseCase.CreateListing: failed to check subcategory: %w", err)
		}
	}
	if input.SpecializationID != "" {
		// Existence only; the specialization's parent subcategory is not
		// cross-checked against the listing's subcategory.
		if _, err := uc.categoryRepo.GetSpecializationByID(ctx, input.SpecializationID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: specialization not found", ErrNotFound)
			}
			return nil, fmt.Errorf("ListingUseCase.CreateListing: failed to check specialization: %w", err)
		}
	}

	country := input.Country
	if country == "" {
		country = "NY"
	}

	now := time.Now()
	listing := &entity.Listing{
		SellerID:         input.SellerID,
		Contact:          entity.Contact{Phone: input.ContactPhone, Email: input.ContactEmail},
		ProductTitle:     input.ProductTitle,
		Description:      input.Description,
		ImageURLs:        input.ImageURLs,
		Price:            input.Price,
		CategoryID:       input.CategoryID,
		SubcategoryID:    input.SubcategoryID,
		SpecializationID: input.SpecializationID,
		Location: entity.Location{
			Country:         country,
			ProductLocation: input.ProductLocation,
			Coordinates:     input.Coordinates,
		},
		Policies:  entity.Policies{SellerTerms: input.SellerTerms},
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := uc.listingRepo.Create(ctx, listing)
	if err != nil {
		uc.logger.Error("Failed to create listing", zap.Error(err), zap.String("seller_id", input.SellerID))
		return nil, fmt.Errorf("ListingUseCase.CreateListing: %w", err)
	}
	listing.ID = id

	if uc.publisher != nil {
		if pubErr := uc.publisher.PublishListingCreated(ctx, listing); pubErr != nil {
			uc.logger.Warn("Failed to publish listing created event",
				zap.Error(pubErr), zap.String("listing_id", listing.ID))
		}
	}

	uc.notifySeller(ctx, listing)

	return listing, nil
}

// notifySeller emails the seller about the new listing. Best effort: a
// failed lookup or send never fails the create.
func (uc *ListingUseCase) notifySeller(ctx context.Context, listing *entity.Listing) {
	if uc.email == nil {
		return
	}
	seller, err := uc.userRepo.GetByID(ctx, listing.SellerID)
	if err != nil || seller.Email == "" {
		if err != nil {
			uc.logger.Warn("Failed to resolve seller for email notification",
				zap.Error(err), zap.String("seller_id", listing.SellerID))
		}
		return
	}
	subject := fmt.Sprintf("Your listing is live: %s", listing.ProductTitle)
	body := fmt.Sprintf("Your listing '%s' has been published.\n\nListing ID: %s", listing.ProductTitle, listing.ID)
	if sendErr := uc.email.SendEmail([]string{seller.Email}, subject, body); sendErr != nil {
		uc.logger.Warn("Failed to send listing created email",
			zap.Error(sendErr), zap.String("listing_id", listing.ID))
	}
}

// Like atomically bumps the like counter and returns the new value. The
// endpoint is callable without identity; the client only exposes it after
// login, which leaves a server-side gap that is documented rather than
// silently closed.
func (uc *ListingUseCase) Like(ctx context.Context, listingID string) (int64, error) {
	if listingID == "" {
		return 0, fmt.Errorf("%w: listing id is required", ErrValidation)
	}

	count, err := uc.listingRepo.IncrementLikes(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, fmt.Errorf("%w: listing not found", ErrNotFound)
		}
		uc.logger.Error("Failed to increment likes", zap.Error(err), zap.String("listing_id", listingID))
		return 0, fmt.Errorf("ListingUseCase.Like: %w", err)
	}

	uc.invalidate(ctx, listingID)
	return count, nil
}

func (uc *ListingUseCase) RecordImpression(ctx context.Context, listingID string) (int64, error) {
	if listingID == "" {
		return 0, fmt.Errorf("%w: listing id is required", ErrValidation)
	}

	count, err := uc.listingRepo.IncrementImpressions(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, fmt.Errorf("%w: listing not found", ErrNotFound)
		}
		uc.logger.Error("Failed to increment impressions", zap.Error(err), zap.String("listing_id", listingID))
		return 0, fmt.Errorf("ListingUseCase.RecordImpression: %w", err)
	}

	uc.invalidate(ctx, listingID)
	return count, nil
}

func (uc *ListingUseCase) invalidate(ctx context.Context, listingID string) {
	if uc.cacheRepo == nil {
		return
	}
	key := listingCacheKey(listingID)
	if err := uc.cacheRepo.Delete(ctx, key); err != nil {
		uc.logger.Warn("Failed to invalidate listing cache", zap.Error(err), zap.String("key", key))
	}
}

// GetListing returns the listing joined with the seller's public profile.
func (uc *ListingUseCase) GetListing(ctx context.Context, id string) (*entity.Listing, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: listing id is required", ErrValidation)
	}

	if uc.cacheRepo != nil {
		key := listingCacheKey(id)
		cached, err := uc.cacheRepo.Get(ctx, key)
		if err == nil {
			var listing entity.Listing
			if unmarshalErr := json.Unmarshal(cached, &listing); unmarshalErr == nil {
				uc.logger.Debug("Listing served from cache", zap.String("key", key))
				return &listing, nil
			}
			if delErr := uc.cacheRepo.Delete(ctx, key); delErr != nil {
				uc.logger.Warn("Failed to drop corrupted cache entry", zap.String("key", key), zap.Error(delErr))
			}
		} else if !errors.Is(err, cache.ErrNotFound) {
			uc.logger.Warn("Listing cache read failed", zap.Error(err), zap.String("key", key))
		}
	}

	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: listing not found", ErrNotFound)
		}
		uc.logger.Error("Failed to get listing", zap.Error(err), zap.String("listing_id", id))
		return nil, fmt.Errorf("ListingUseCase.GetListing: %w", err)
	}

	if seller, err := uc.userRepo.GetByID(ctx, listing.SellerID); err == nil {
		profile := seller.Public()
		listing.Seller = &profile
	} else if !errors.Is(err, repository.ErrNotFound) {
		uc.logger.Warn("Failed to populate seller", zap.Error(err), zap.String("listing_id", id))
	}

	if uc.cacheRepo != nil {
		if data, marshalErr := json.Marshal(listing); marshalErr == nil {
			key := listingCacheKey(id)
			if setErr := uc.cacheRepo.Set(ctx, key, data, listingCacheTTL); setErr != nil {
				uc.logger.Warn("Failed to cache listing", zap.Error(setErr), zap.String("key", key))
			}
		}
	}

	return listing, nil
}

// UploadPhoto stores the photo bytes and appends the resulting URL to the
// listing's images.
func (uc *ListingUseCase) UploadPhoto(ctx context.Context, listingID, fileName string, data []byte) (string, error) {
	if listingID == "" || len(data) == 0 {
		return "", fmt.Errorf("%w: listing id and photo data are required", ErrValidation)
	}
	if uc.photos == nil {
		return "", fmt.Errorf("ListingUseCase.UploadPhoto: photo storage is not configured")
	}

	if _, err := uc.listingRepo.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: listing not found", ErrNotFound)
		}
		return "", fmt.Errorf("ListingUseCase.UploadPhoto: %w", err)
	}

	url, err := uc.photos.Upload(ctx, fileName, data)
	if err != nil {
		uc.logger.Error("Failed to upload photo", zap.Error(err), zap.String("listing_id", listingID))
		return "", fmt.Errorf("ListingUseCase.UploadPhoto: %w", err)
	}

	if err := uc.listingRepo.AddImageURL(ctx, listingID, url); err != nil {
		uc.logger.Error("Failed to attach photo url", zap.Error(err), zap.String("listing_id", listingID))
		return "", fmt.Errorf("ListingUseCase.UploadPhoto: %w", err)
	}

	uc.invalidate(ctx, listingID)
	return url, nil
}

// ListListings returns the full collection. No paging, matching the
// current feed behavior.
func (uc *ListingUseCase) ListListings(ctx context.Context) ([]*entity.Listing, error) {
	listings, err := uc.listingRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list listings", zap.Error(err))
		return nil, fmt.Errorf("ListingUseCase.ListListings: %w", err)
	}
	return listings, nil
}
