package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bryokn/ClassiConnect/internal/entity"
	"github.com/bryokn/ClassiConnect/internal/port/repository"
)

const interactionsCollectionName = "interactions"

// InteractionMongoRepository keeps all three record kinds in one collection
// discriminated by "kind". Two partial unique indexes on
// (listing_id, user_id, kind) back the write paths: the active:true one
// turns a concurrent duplicate report or callback into a duplicate-key
// error, and the kind:availability one keeps racing upserts from inserting
// a second availability record.
type InteractionMongoRepository struct {
	db *mongo.Database
}

func NewInteractionMongoRepository(client *mongo.Client, dbName string) *InteractionMongoRepository {
	return &InteractionMongoRepository{
		db: client.Database(dbName),
	}
}

type interactionDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Kind           string             `bson:"kind"`
	ListingID      string             `bson:"listing_id"`
	UserID         string             `bson:"user_id"`
	Active         bool               `bson:"active"`
	IsAvailable    bool               `bson:"is_available"`
	ReportContent  string             `bson:"report_content,omitempty"`
	ReportStatus   string             `bson:"report_status,omitempty"`
	CallbackStatus string             `bson:"callback_status,omitempty"`
	AdditionalInfo string             `bson:"additional_info,omitempty"`
	CreatedAt      primitive.DateTime `bson:"created_at"`
	UpdatedAt      primitive.DateTime `bson:"updated_at"`
}

func toInteractionEntity(doc *interactionDocument) *entity.Interaction {
	return &entity.Interaction{
		ID:             doc.ID.Hex(),
		Kind:           entity.InteractionKind(doc.Kind),
		ListingID:      doc.ListingID,
		UserID:         doc.UserID,
		IsAvailable:    doc.IsAvailable,
		ReportContent:  doc.ReportContent,
		ReportStatus:   entity.ReportStatus(doc.ReportStatus),
		CallbackStatus: entity.CallbackStatus(doc.CallbackStatus),
		AdditionalInfo: doc.AdditionalInfo,
		CreatedAt:      doc.CreatedAt.Time(),
		UpdatedAt:      doc.UpdatedAt.Time(),
	}
}

func (r *InteractionMongoRepository) UpsertAvailability(ctx context.Context, listingID, userID string) (*entity.Interaction, error) {
	now := primitive.NewDateTimeFromTime(time.Now())

	filter := bson.M{
		"kind":       string(entity.KindAvailability),
		"listing_id": listingID,
		"user_id":    userID,
	}
	update := bson.M{
		"$set": bson.M{
			"is_available": false,
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{
			"kind":       string(entity.KindAvailability),
			"listing_id": listingID,
			"user_id":    userID,
			"active":     false,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc interactionDocument
	err := r.db.Collection(interactionsCollectionName).FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		// Concurrent upsert lost the insert race against the unique index on
		// (listing_id, user_id, kind); the record now exists, so a retry
		// takes the update path.
		err = r.db.Collection(interactionsCollectionName).FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert availability in mongo: %w", err)
	}
	return toInteractionEntity(&doc), nil
}

func (r *InteractionMongoRepository) CreateReport(ctx context.Context, listingID, userID, content string) (*entity.Interaction, error) {
	now := primitive.NewDateTimeFromTime(time.Now())
	doc := &interactionDocument{
		Kind:          string(entity.KindAbuseReport),
		ListingID:     listingID,
		UserID:        userID,
		Active:        true,
		ReportContent: content,
		ReportStatus:  string(entity.ReportPending),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	res, err := r.db.Collection(interactionsCollectionName).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrConflict
		}
		return nil, fmt.Errorf("failed to create abuse report in mongo: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return toInteractionEntity(doc), nil
}

func (r *InteractionMongoRepository) CreateCallback(ctx context.Context, listingID, userID string) (*entity.Interaction, error) {
	now := primitive.NewDateTimeFromTime(time.Now())
	doc := &interactionDocument{
		Kind:           string(entity.KindCallbackRequest),
		ListingID:      listingID,
		UserID:         userID,
		Active:         true,
		CallbackStatus: string(entity.CallbackPending),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	res, err := r.db.Collection(interactionsCollectionName).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrConflict
		}
		return nil, fmt.Errorf("failed to create callback request in mongo: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return toInteractionEntity(doc), nil
}

func (r *InteractionMongoRepository) CompleteCallback(ctx context.Context, listingID, userID string) error {
	filter := bson.M{
		"kind":       string(entity.KindCallbackRequest),
		"listing_id": listingID,
		"user_id":    userID,
		"active":     true,
	}
	update := bson.M{
		"$set": bson.M{
			"callback_status": string(entity.CallbackCompleted),
			"active":          false,
			"updated_at":      primitive.NewDateTimeFromTime(time.Now()),
		},
	}

	res, err := r.db.Collection(interactionsCollectionName).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to complete callback request in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *InteractionMongoRepository) FindActive(ctx context.Context, kind entity.InteractionKind, listingID, userID string) (*entity.Interaction, error) {
	filter := bson.M{
		"kind":       string(kind),
		"listing_id": listingID,
		"user_id":    userID,
	}
	// Availability records are never "active" in the index sense; for the
	// other kinds only a blocking record counts.
	if kind != entity.KindAvailability {
		filter["active"] = true
	}

	var doc interactionDocument
	err := r.db.Collection(interactionsCollectionName).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find interaction in mongo: %w", err)
	}
	return toInteractionEntity(&doc), nil
}
