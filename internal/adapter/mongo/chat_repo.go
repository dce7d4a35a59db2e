package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bryokn/ClassiConnect/internal/entity"
)

const chatCollectionName = "chat_messages"

type ChatMongoRepository struct {
	db *mongo.Database
}

func NewChatMongoRepository(client *mongo.Client, dbName string) *ChatMongoRepository {
	return &ChatMongoRepository{
		db: client.Database(dbName),
	}
}

type chatMessageDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	SenderID   string             `bson:"sender_id"`
	ReceiverID string             `bson:"receiver_id"`
	ListingID  string             `bson:"listing_id"`
	Message    string             `bson:"message"`
	IsRead     bool               `bson:"is_read"`
	CreatedAt  primitive.DateTime `bson:"created_at"`
	UpdatedAt  primitive.DateTime `bson:"updated_at"`
}

func toChatMessageEntity(doc *chatMessageDocument) *entity.ChatMessage {
	return &entity.ChatMessage{
		ID:         doc.ID.Hex(),
		SenderID:   doc.SenderID,
		ReceiverID: doc.ReceiverID,
		ListingID:  doc.ListingID,
		Message:    doc.Message,
		IsRead:     doc.IsRead,
		CreatedAt:  doc.CreatedAt.Time(),
		UpdatedAt:  doc.UpdatedAt.Time(),
	}
}

func (r *ChatMongoRepository) Create(ctx context.Context, msg *entity.ChatMessage) (string, error) {
	doc := &chatMessageDocument{
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		ListingID:  msg.ListingID,
		Message:    msg.Message,
		IsRead:     msg.IsRead,
		CreatedAt:  primitive.NewDateTimeFromTime(msg.CreatedAt),
		UpdatedAt:  primitive.NewDateTimeFromTime(msg.UpdatedAt),
	}

	res, err := r.db.Collection(chatCollectionName).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create chat message in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *ChatMongoRepository) GetByListingForUser(ctx context.Context, listingID, userID string) ([]*entity.ChatMessage, error) {
	filter := bson.M{
		"listing_id": listingID,
		"$or": []bson.M{
			{"sender_id": userID},
			{"receiver_id": userID},
		},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(chatCollectionName).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chat messages from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []chatMessageDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode chat messages from mongo: %w", err)
	}

	messages := make([]*entity.ChatMessage, len(docs))
	for i, doc := range docs {
		messages[i] = toChatMessageEntity(&doc)
	}
	return messages, nil
}

func (r *ChatMongoRepository) MarkReceivedRead(ctx context.Context, listingID, userID string) error {
	_, err := r.db.Collection(chatCollectionName).UpdateMany(
		ctx,
		bson.M{"listing_id": listingID, "receiver_id": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark chat messages read in mongo: %w", err)
	}
	return nil
}
