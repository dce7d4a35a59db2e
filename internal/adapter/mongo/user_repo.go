package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bryokn/ClassiConnect/internal/entity"
	"github.com/bryokn/ClassiConnect/internal/port/repository"
)

const usersCollectionName = "users"

type UserMongoRepository struct {
	db *mongo.Database
}

func NewUserMongoRepository(client *mongo.Client, dbName string) *UserMongoRepository {
	return &UserMongoRepository{
		db: client.Database(dbName),
	}
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	ProfileImage string             `bson:"profile_image,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	Role         string             `bson:"role"`
	PhoneNumber  string             `bson:"phone_number,omitempty"`
	ReferralCode string             `bson:"referral_code,omitempty"`
	UniqueID     string             `bson:"unique_id"`
	CreatedAt    primitive.DateTime `bson:"created_at"`
	UpdatedAt    primitive.DateTime `bson:"updated_at"`
}

func toUserDocument(u *entity.User) (*userDocument, error) {
	doc := &userDocument{
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		ProfileImage: u.ProfileImage,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		PhoneNumber:  u.PhoneNumber,
		ReferralCode: u.ReferralCode,
		UniqueID:     u.UniqueID,
		CreatedAt:    primitive.NewDateTimeFromTime(u.CreatedAt),
		UpdatedAt:    primitive.NewDateTimeFromTime(u.UpdatedAt),
	}
	if u.ID != "" {
		objID, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID format: %w", err)
		}
		doc.ID = objID
	}
	return doc, nil
}

func toUserEntity(doc *userDocument) *entity.User {
	return &entity.User{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		FirstName:    doc.FirstName,
		LastName:     doc.LastName,
		ProfileImage: doc.ProfileImage,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Role:         entity.UserRole(doc.Role),
		PhoneNumber:  doc.PhoneNumber,
		ReferralCode: doc.ReferralCode,
		UniqueID:     doc.UniqueID,
		CreatedAt:    doc.CreatedAt.Time(),
		UpdatedAt:    doc.UpdatedAt.Time(),
	}
}

func (r *UserMongoRepository) Create(ctx context.Context, user *entity.User) (string, error) {
	doc, err := toUserDocument(user)
	if err != nil {
		return "", err
	}

	res, err := r.db.Collection(usersCollectionName).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", fmt.Errorf("failed to create user in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *UserMongoRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc userDocument
	err = r.db.Collection(usersCollectionName).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id from mongo: %w", err)
	}
	return toUserEntity(&doc), nil
}

func (r *UserMongoRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc userDocument
	err := r.db.Collection(usersCollectionName).FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email from mongo: %w", err)
	}
	return toUserEntity(&doc), nil
}
