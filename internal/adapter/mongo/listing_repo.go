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

const listingsCollectionName = "listings"

type ListingMongoRepository struct {
	db *mongo.Database
}

func NewListingMongoRepository(client *mongo.Client, dbName string) *ListingMongoRepository {
	return &ListingMongoRepository{
		db: client.Database(dbName),
	}
}

type contactDocument struct {
	Phone string `bson:"phone,omitempty"`
	Email string `bson:"email,omitempty"`
}

type locationDocument struct {
	Country         string    `bson:"country"`
	ProductLocation string    `bson:"product_location"`
	Type            string    `bson:"type"`
	Coordinates     []float64 `bson:"coordinates"`
}

type policiesDocument struct {
	SellerTerms string `bson:"seller_terms,omitempty"`
}

type listingDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	SellerID         string             `bson:"seller_id"`
	Contact          contactDocument    `bson:"contact"`
	ProductTitle     string             `bson:"product_title"`
	Description      string             `bson:"description"`
	ImageURLs        []string           `bson:"image_urls"`
	Price            string             `bson:"price"`
	Featured         bool               `bson:"featured"`
	Likes            int64              `bson:"likes"`
	Impressions      int64              `bson:"impressions"`
	CategoryID       string             `bson:"category_id"`
	SubcategoryID    string             `bson:"subcategory_id,omitempty"`
	SpecializationID string             `bson:"specialization_id,omitempty"`
	Location         locationDocument   `bson:"location"`
	Policies         policiesDocument   `bson:"policies"`
	CreatedAt        primitive.DateTime `bson:"created_at"`
	UpdatedAt        primitive.DateTime `bson:"updated_at"`
}

func toListingDocument(l *entity.Listing) (*listingDocument, error) {
	doc := &listingDocument{
		SellerID:         l.SellerID,
		Contact:          contactDocument{Phone: l.Contact.Phone, Email: l.Contact.Email},
		ProductTitle:     l.ProductTitle,
		Description:      l.Description,
		ImageURLs:        l.ImageURLs,
		Price:            l.Price,
		Featured:         l.Featured,
		Likes:            l.Likes,
		Impressions:      l.Impressions,
		CategoryID:       l.CategoryID,
		SubcategoryID:    l.SubcategoryID,
		SpecializationID: l.SpecializationID,
		Location: locationDocument{
			Country:         l.Location.Country,
			ProductLocation: l.Location.ProductLocation,
			Type:            "Point",
			Coordinates:     []float64{l.Location.Coordinates[0], l.Location.Coordinates[1]},
		},
		Policies:  policiesDocument{SellerTerms: l.Policies.SellerTerms},
		CreatedAt: primitive.NewDateTimeFromTime(l.CreatedAt),
		UpdatedAt: primitive.NewDateTimeFromTime(l.UpdatedAt),
	}
	if l.ID != "" {
		objID, err := primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid listing ID format: %w", err)
		}
		doc.ID = objID
	}
	return doc, nil
}

func toListingEntity(doc *listingDocument) *entity.Listing {
	l := &entity.Listing{
		ID:               doc.ID.Hex(),
		SellerID:         doc.SellerID,
		Contact:          entity.Contact{Phone: doc.Contact.Phone, Email: doc.Contact.Email},
		ProductTitle:     doc.ProductTitle,
		Description:      doc.Description,
		ImageURLs:        doc.ImageURLs,
		Price:            doc.Price,
		Featured:         doc.Featured,
		Likes:            doc.Likes,
		Impressions:      doc.Impressions,
		CategoryID:       doc.CategoryID,
		SubcategoryID:    doc.SubcategoryID,
		SpecializationID: doc.SpecializationID,
		Location: entity.Location{
			Country:         doc.Location.Country,
			ProductLocation: doc.Location.ProductLocation,
		},
		Policies:  entity.Policies{SellerTerms: doc.Policies.SellerTerms},
		CreatedAt: doc.CreatedAt.Time(),
		UpdatedAt: doc.UpdatedAt.Time(),
	}
	if len(doc.Location.Coordinates) == 2 {
		l.Location.Coordinates = [2]float64{doc.Location.Coordinates[0], doc.Location.Coordinates[1]}
	}
	return l
}

func (r *ListingMongoRepository) Create(ctx context.Context, listing *entity.Listing) (string, error) {
	doc, err := toListingDocument(listing)
	if err != nil {
		return "", err
	}

	res, err := r.db.Collection(listingsCollectionName).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create listing in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *ListingMongoRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc listingDocument
	err = r.db.Collection(listingsCollectionName).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get listing by id from mongo: %w", err)
	}
	return toListingEntity(&doc), nil
}

func (r *ListingMongoRepository) List(ctx context.Context) ([]*entity.Listing, error) {
	cursor, err := r.db.Collection(listingsCollectionName).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list listings from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []listingDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode listings from mongo: %w", err)
	}

	listings := make([]*entity.Listing, len(docs))
	for i, doc := range docs {
		listings[i] = toListingEntity(&doc)
	}
	return listings, nil
}

// incrementCounter is a single atomic add-and-return. FindOneAndUpdate with
// $inc and ReturnDocument(After) guarantees concurrent increments are all
// reflected.
func (r *ListingMongoRepository) incrementCounter(ctx context.Context, id, field string) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, repository.ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc listingDocument
	err = r.db.Collection(listingsCollectionName).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$inc": bson.M{field: 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, repository.ErrNotFound
		}
		return 0, fmt.Errorf("failed to increment %s in mongo: %w", field, err)
	}

	switch field {
	case "likes":
		return doc.Likes, nil
	default:
		return doc.Impressions, nil
	}
}

func (r *ListingMongoRepository) IncrementLikes(ctx context.Context, id string) (int64, error) {
	return r.incrementCounter(ctx, id, "likes")
}

func (r *ListingMongoRepository) IncrementImpressions(ctx context.Context, id string) (int64, error) {
	return r.incrementCounter(ctx, id, "impressions")
}

func (r *ListingMongoRepository) AddImageURL(ctx context.Context, id, url string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.db.Collection(listingsCollectionName).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$push": bson.M{"image_urls": url}},
	)
	if err != nil {
		return fmt.Errorf("failed to push image url in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
