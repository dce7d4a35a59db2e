package repository

import (
	"context"

	"github.com/bryokn/ClassiConnect/internal/entity"
)

type CategoryRepository interface {
	CreateCategory(ctx context.Context, c *entity.Category) (string, error)
	GetCategoryByID(ctx context.Context, id string) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)

	CreateSubcategory(ctx context.Context, s *entity.Subcategory) (string, error)
	GetSubcategoryByID(ctx context.Context, id string) (*entity.Subcategory, error)
	ListSubcategories(ctx context.Context) ([]*entity.Subcategory, error)

	CreateSpecialization(ctx context.Context, s *entity.Specialization) (string, error)
	GetSpecializationByID(ctx context.Context, id string) (*entity.Specialization, error)
	ListSpecializations(ctx context.Context) ([]*entity.Specialization, error)
}
