package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bryokn/ClassiConnect/internal/middleware"
	"github.com/bryokn/ClassiConnect/internal/usecase"
)

type CategoryHandler struct {
	categoryUC *usecase.CategoryUseCase
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewCategoryHandler(categoryUC *usecase.CategoryUseCase, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryUC: categoryUC,
		validate:   validator.New(),
		logger:     logger,
	}
}

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	ImageURL    string `json:"imageUrl" validate:"required,url"`
	ParentID    string `json:"parentId"`
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	category, err := h.categoryUC.CreateCategory(r.Context(), usecase.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CreatedBy:   middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	sub, err := h.categoryUC.CreateSubcategory(r.Context(), usecase.CreateSubcategoryInput{
		Name:             req.Name,
		Description:      req.Description,
		ImageURL:         req.ImageURL,
		ParentCategoryID: req.ParentID,
		CreatedBy:        middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, sub)
}

func (h *CategoryHandler) CreateSpecialization(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	spec, err := h.categoryUC.CreateSpecialization(r.Context(), usecase.CreateSpecializationInput{
		Name:          req.Name,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		SubcategoryID: req.ParentID,
		CreatedBy:     middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, spec)
}

func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryUC.ListCategories(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) ListSubcategories(w http.ResponseWriter, r *http.Request) {
	subs, err := h.categoryUC.ListSubcategories(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, subs)
}

func (h *CategoryHandler) ListSpecializations(w http.ResponseWriter, r *http.Request) {
	specs, err := h.categoryUC.ListSpecializations(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, specs)
}
