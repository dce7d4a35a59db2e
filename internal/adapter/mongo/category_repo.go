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

const (
	categoriesCollectionName      = "categories"
	subcategoriesCollectionName   = "subcategories"
	specializationsCollectionName = "specializations"
)

type CategoryMongoRepository struct {
	db *mongo.Database
}

func NewCategoryMongoRepository(client *mongo.Client, dbName string) *CategoryMongoRepository {
	return &CategoryMongoRepository{
		db: client.Database(dbName),
	}
}

type categoryDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	ImageURL    string             `bson:"image_url,omitempty"`
	ParentID    string             `bson:"parent_id,omitempty"`
	CreatedBy   string             `bson:"created_by"`
	CreatedAt   primitive.DateTime `bson:"created_at"`
	UpdatedAt   primitive.DateTime `bson:"updated_at"`
}

func (r *CategoryMongoRepository) insert(ctx context.Context, collection string, doc *categoryDocument) (string, error) {
	res, err := r.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *CategoryMongoRepository) findByID(ctx context.Context, collection, id string) (*categoryDocument, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc categoryDocument
	err = r.db.Collection(collection).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document from %s: %w", collection, err)
	}
	return &doc, nil
}

func (r *CategoryMongoRepository) list(ctx context.Context, collection string) ([]*categoryDocument, error) {
	cursor, err := r.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []*categoryDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", collection, err)
	}
	return docs, nil
}

func (r *CategoryMongoRepository) CreateCategory(ctx context.Context, c *entity.Category) (string, error) {
	return r.insert(ctx, categoriesCollectionName, &categoryDocument{
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   primitive.NewDateTimeFromTime(c.CreatedAt),
		UpdatedAt:   primitive.NewDateTimeFromTime(c.UpdatedAt),
	})
}

func (r *CategoryMongoRepository) GetCategoryByID(ctx context.Context, id string) (*entity.Category, error) {
	doc, err := r.findByID(ctx, categoriesCollectionName, id)
	if err != nil {
		return nil, err
	}
	return &entity.Category{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Description: doc.Description,
		ImageURL:    doc.ImageURL,
		CreatedBy:   doc.CreatedBy,
		CreatedAt:   doc.CreatedAt.Time(),
		UpdatedAt:   doc.UpdatedAt.Time(),
	}, nil
}

func (r *CategoryMongoRepository) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	docs, err := r.list(ctx, categoriesCollectionName)
	if err != nil {
		return nil, err
	}
	categories := make([]*entity.Category, len(docs))
	for i, doc := range docs {
		categories[i] = &entity.Category{
			ID:          doc.ID.Hex(),
			Name:        doc.Name,
			Description: doc.Description,
			ImageURL:    doc.ImageURL,
			CreatedBy:   doc.CreatedBy,
			CreatedAt:   doc.CreatedAt.Time(),
			UpdatedAt:   doc.UpdatedAt.Time(),
		}
	}
	return categories, nil
}

func (r *CategoryMongoRepository) CreateSubcategory(ctx context.Context, s *entity.Subcategory) (string, error) {
	return r.insert(ctx, subcategoriesCollectionName, &categoryDocument{
		Name:        s.Name,
		Description: s.Description,
		ImageURL:    s.ImageURL,
		ParentID:    s.ParentCategoryID,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   primitive.NewDateTimeFromTime(s.CreatedAt),
		UpdatedAt:   primitive.NewDateTimeFromTime(s.UpdatedAt),
	})
}

func (r *CategoryMongoRepository) GetSubcategoryByID(ctx context.Context, id string) (*entity.Subcategory, error) {
	doc, err := r.findByID(ctx, subcategoriesCollectionName, id)
	if err != nil {
		return nil, err
	}
	return &entity.Subcategory{
		ID:               doc.ID.Hex(),
		Name:             doc.Name,
		Description:      doc.Description,
		ImageURL:         doc.ImageURL,
		ParentCategoryID: doc.ParentID,
		CreatedBy:        doc.CreatedBy,
		CreatedAt:        doc.CreatedAt.Time(),
		UpdatedAt:        doc.UpdatedAt.Time(),
	}, nil
}

func (r *CategoryMongoRepository) ListSubcategories(ctx context.Context) ([]*entity.Subcategory, error) {
	docs, err := r.list(ctx, subcategoriesCollectionName)
	if err != nil {
		return nil, err
	}
	subs := make([]*entity.Subcategory, len(docs))
	for i, doc := range docs {
		subs[i] = &entity.Subcategory{
			ID:               doc.ID.Hex(),
			Name:             doc.Name,
			Description:      doc.Description,
			ImageURL:         doc.ImageURL,
			ParentCategoryID: doc.ParentID,
			CreatedBy:        doc.CreatedBy,
			CreatedAt:        doc.CreatedAt.Time(),
			UpdatedAt:        doc.UpdatedAt.Time(),
		}
	}
	return subs, nil
}

func (r *CategoryMongoRepository) CreateSpecialization(ctx context.Context, s *entity.Specialization) (string, error) {
	return r.insert(ctx, specializationsCollectionName, &categoryDocument{
		Name:        s.Name,
		Description: s.Description,
		ImageURL:    s.ImageURL,
		ParentID:    s.SubcategoryID,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   primitive.NewDateTimeFromTime(s.CreatedAt),
		UpdatedAt:   primitive.NewDateTimeFromTime(s.UpdatedAt),
	})
}

func (r *CategoryMongoRepository) GetSpecializationByID(ctx context.Context, id string) (*entity.Specialization, error) {
	doc, err := r.findByID(ctx, specializationsCollectionName, id)
	if err != nil {
		return nil, err
	}
	return &entity.Specialization{
		ID:            doc.ID.Hex(),
		Name:          doc.Name,
		Description:   doc.Description,
		ImageURL:      doc.ImageURL,
		SubcategoryID: doc.ParentID,
		CreatedBy:     doc.CreatedBy,
		CreatedAt:     doc.CreatedAt.Time(),
		UpdatedAt:     doc.UpdatedAt.Time(),
	}, nil
}

func (r *CategoryMongoRepository) ListSpecializations(ctx context.Context) ([]*entity.Specialization, error) {
	docs, err := r.list(ctx, specializationsCollectionName)
	if err != nil {
		return nil, err
	}
	specs := make([]*entity.Specialization, len(docs))
	for i, doc := range docs {
		specs[i] = &entity.Specialization{
			ID:            doc.ID.Hex(),
			Name:          doc.Name,
			Description:   doc.Description,
			ImageURL:      doc.ImageURL,
			SubcategoryID: doc.ParentID,
			CreatedBy:     doc.CreatedBy,
			CreatedAt:     doc.CreatedAt.Time(),
			UpdatedAt:     doc.UpdatedAt.Time(),
		}
	}
	return specs, nil
}
