package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/bryokn/ClassiConnect/internal/config"
)

func NewMongoDBConnection(cfg *config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.URI)

	if cfg.Username != "" && cfg.Password != "" {
		clientOptions.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}

	if cfg.MinPoolSize > 0 {
		clientOptions.SetMinPoolSize(cfg.MinPoolSize)
	}
	if cfg.MaxPoolSize > 0 {
		clientOptions.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the unique indexes the write paths depend on. The
// partial indexes on interactions are what turn a concurrent duplicate
// submission into a duplicate-key error instead of a second record.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone_number", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "unique_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := db.Collection(usersCollectionName).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	interactionIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "listing_id", Value: 1},
				{Key: "user_id", Value: 1},
				{Key: "kind", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}),
		},
		// Availability records carry active:false and so escape the index
		// above; this one makes a concurrent availability upsert collide on
		// duplicate key instead of inserting a second record.
		{
			Keys: bson.D{
				{Key: "listing_id", Value: 1},
				{Key: "user_id", Value: 1},
				{Key: "kind", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"kind": "availability"}),
		},
	}
	if _, err := db.Collection(interactionsCollectionName).Indexes().CreateMany(ctx, interactionIndexes); err != nil {
		return fmt.Errorf("failed to create interaction indexes: %w", err)
	}

	commentIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "listing_id", Value: 1}, {Key: "date", Value: 1}},
	}
	if _, err := db.Collection(commentsCollectionName).Indexes().CreateOne(ctx, commentIndex); err != nil {
		return fmt.Errorf("failed to create comment index: %w", err)
	}

	chatIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "listing_id", Value: 1}, {Key: "created_at", Value: -1}},
	}
	if _, err := db.Collection(chatCollectionName).Indexes().CreateOne(ctx, chatIndex); err != nil {
		return fmt.Errorf("failed to create chat index: %w", err)
	}

	listingIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "location.coordinates", Value: "2dsphere"}},
	}
	if _, err := db.Collection(listingsCollectionName).Indexes().CreateOne(ctx, listingIndex); err != nil {
		return fmt.Errorf("failed to create listing geo index: %w", err)
	}

	categoryIndexes := []struct {
		collection string
	}{
		{categoriesCollectionName},
		{subcategoriesCollectionName},
		{specializationsCollectionName},
	}
	for _, ci := range categoryIndexes {
		idx := mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		}
		if _, err := db.Collection(ci.collection).Indexes().CreateOne(ctx, idx); err != nil {
			return fmt.Errorf("failed to create name index on %s: %w", ci.collection, err)
		}
	}

	return nil
}
