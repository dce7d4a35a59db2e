package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bryokn/ClassiConnect/internal/entity"
	"github.com/bryokn/ClassiConnect/internal/port/repository"
)

const commentsCollectionName = "comments"

type CommentMongoRepository struct {
	db *mongo.Database
}

func NewCommentMongoRepository(client *mongo.Client, dbName string) *CommentMongoRepository {
	return &CommentMongoRepository{
		db: client.Database(dbName),
	}
}

type commentDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ListingID string             `bson:"listing_id"`
	Text      string             `bson:"text"`
	Username  string             `bson:"username"`
	Date      primitive.DateTime `bson:"date"`
	Likes     int64              `bson:"likes"`
	Dislikes  int64              `bson:"dislikes"`
}

func toCommentDocument(c *entity.Comment) (*commentDocument, error) {
	doc := &commentDocument{
		ListingID: c.ListingID,
		Text:      c.Text,
		Username:  c.Username,
		Date:      primitive.NewDateTimeFromTime(c.Date),
		Likes:     c.Likes,
		Dislikes:  c.Dislikes,
	}
	if c.ID != "" {
		objID, err := primitive.ObjectIDFromHex(c.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid comment ID format: %w", err)
		}
		doc.ID = objID
	}
	return doc, nil
}

func toCommentEntity(doc *commentDocument) *entity.Comment {
	return &entity.Comment{
		ID:        doc.ID.Hex(),
		ListingID: doc.ListingID,
		Text:      doc.Text,
		Username:  doc.Username,
		Date:      doc.Date.Time(),
		Likes:     doc.Likes,
		Dislikes:  doc.Dislikes,
	}
}

func (r *CommentMongoRepository) Create(ctx context.Context, comment *entity.Comment) (string, error) {
	doc, err := toCommentDocument(comment)
	if err != nil {
		return "", err
	}

	res, err := r.db.Collection(commentsCollectionName).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create comment in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *CommentMongoRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc commentDocument
	err = r.db.Collection(commentsCollectionName).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get comment by id from mongo: %w", err)
	}
	return toCommentEntity(&doc), nil
}

func (r *CommentMongoRepository) GetByListingID(ctx context.Context, listingID string) ([]*entity.Comment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.db.Collection(commentsCollectionName).Find(ctx, bson.M{"listing_id": listingID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []commentDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode comments from mongo: %w", err)
	}

	comments := make([]*entity.Comment, len(docs))
	for i, doc := range docs {
		comments[i] = toCommentEntity(&doc)
	}
	return comments, nil
}

func (r *CommentMongoRepository) React(ctx context.Context, id string, reaction repository.CommentReaction) (*entity.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	field := "likes"
	if reaction == repository.ReactionDislike {
		field = "dislikes"
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc commentDocument
	err = r.db.Collection(commentsCollectionName).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$inc": bson.M{field: 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to apply %s to comment in mongo: %w", field, err)
	}
	return toCommentEntity(&doc), nil
}
