package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bryokn/ClassiConnect/internal/entity"
	"github.com/bryokn/ClassiConnect/internal/port/repository"
)

type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
}

func NewCategoryUseCase(cr repository.CategoryRepository, log *zap.Logger) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: cr, logger: log}
}

type CreateCategoryInput struct {
	Name        string
	Description string
	ImageURL    string
	CreatedBy   string
}

func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput) (*entity.Category, error) {
	if input.Name == "" || input.Description == "" || input.ImageURL == "" {
		return nil, fmt.Errorf("%w: name, description and image URL are required", ErrValidation)
	}

	now := time.Now()
	category := &entity.Category{
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := uc.categoryRepo.CreateCategory(ctx, category)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: category name already exists", ErrConflict)
		}
		uc.logger.Error("Failed to create category", zap.Error(err), zap.String("name", input.Name))
		return nil, fmt.Errorf("CategoryUseCase.CreateCategory: %w", err)
	}
	category.ID = id
	return category, nil
}

type CreateSubcategoryInput struct {
	Name             string
	Description      string
	ImageURL         string
	ParentCategoryID string
	CreatedBy        string
}

func (uc *CategoryUseCase) CreateSubcategory(ctx context.Context, input CreateSubcategoryInput) (*entity.Subcategory, error) {
	if input.Name == "" || input.Description == "" || input.ImageURL == "" || input.ParentCategoryID == "" {
		return nil, fmt.Errorf("%w: name, description, image URL and parent category are required", ErrValidation)
	}

	if _, err := uc.categoryRepo.GetCategoryByID(ctx, input.ParentCategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: parent category not found", ErrNotFound)
		}
		return nil, fmt.Errorf("CategoryUseCase.CreateSubcategory: failed to check parent: %w", err)
	}

	now := time.Now()
	sub := &entity.Subcategory{
		Name:             input.Name,
		Description:      input.Description,
		ImageURL:         input.ImageURL,
		ParentCategoryID: input.ParentCategoryID,
		CreatedBy:        input.CreatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	id, err := uc.categoryRepo.CreateSubcategory(ctx, sub)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: subcategory name already exists", ErrConflict)
		}
		uc.logger.Error("Failed to create subcategory", zap.Error(err), zap.String("name", input.Name))
		return nil, fmt.Errorf("CategoryUseCase.CreateSubcategory: %w", err)
	}
	sub.ID = id
	return sub, nil
}

type CreateSpecializationInput struct {
	Name          string
	Description   string
	ImageURL      string
	SubcategoryID string
	CreatedBy     string
}

func (uc *CategoryUseCase) CreateSpecialization(ctx context.Context, input CreateSpecializationInput) (*entity.Specialization, error) {
	if input.Name == "" || input.Description == "" || input.ImageURL == "" || input.SubcategoryID == "" {
		return nil, fmt.Errorf("%w: name, description, image URL and subcategory are required", ErrValidation)
	}

	if _, err := uc.categoryRepo.GetSubcategoryByID(ctx, input.SubcategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: subcategory not found", ErrNotFound)
		}
		return nil, fmt.Errorf("CategoryUseCase.CreateSpecialization: failed to check subcategory: %w", err)
	}

	now := time.Now()
	spec := &entity.Specialization{
		Name:          input.Name,
		Description:   input.Description,
		ImageURL:      input.ImageURL,
		SubcategoryID: input.SubcategoryID,
		CreatedBy:     input.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	id, err := uc.categoryRepo.CreateSpecialization(ctx, spec)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: specialization name already exists", ErrConflict)
		}
		uc.logger.Error("Failed to create specialization", zap.Error(err), zap.String("name", input.Name))
		return nil, fmt.Errorf("CategoryUseCase.CreateSpecialization: %w", err)
	}
	spec.ID = id
	return spec, nil
}

func (uc *CategoryUseCase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := uc.categoryRepo.ListCategories(ctx)
	if err != nil {
		uc.logger.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("CategoryUseCase.ListCategories: %w", err)
	}
	return categories, nil
}

func (uc *CategoryUseCase) ListSubcategories(ctx context.Context) ([]*entity.Subcategory, error) {
	subs, err := uc.categoryRepo.ListSubcategories(ctx)
	if err != nil {
		uc.logger.Error("Failed to list subcategories", zap.Error(err))
		return nil, fmt.Errorf("CategoryUseCase.ListSubcategories: %w", err)
	}
	return subs, nil
}

func (uc *CategoryUseCase) ListSpecializations(ctx context.Context) ([]*entity.Specialization, error) {
	specs, err := uc.categoryRepo.ListSpecializations(ctx)
	if err != nil {
		uc.logger.Error("Failed to list specializations", zap.Error(err))
		return nil, fmt.Errorf("CategoryUseCase.ListSpecializations: %w", err)
	}
	return specs, nil
}
