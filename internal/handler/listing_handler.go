package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bryokn/ClassiConnect/internal/entity"
	"github.com/bryokn/ClassiConnect/internal/middleware"
	"github.com/bryokn/ClassiConnect/internal/platform/metrics"
	"github.com/bryokn/ClassiConnect/internal/usecase"
)

const maxPhotoSize = 10 << 20 // 10 MiB

type ListingHandler struct {
	listingUC *usecase.ListingUseCase
	metrics   *metrics.Manager
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewListingHandler(listingUC *usecase.ListingUseCase, m *metrics.Manager, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{
		listingUC: listingUC,
		metrics:   m,
		validate:  validator.New(),
		logger:    logger,
	}
}

type createListingRequest struct {
	ContactPhone     string     `json:"contactPhone"`
	ContactEmail     string     `json:"contactEmail" validate:"omitempty,email"`
	ProductTitle     string     `json:"productTitle" validate:"required"`
	Description      string     `json:"description" validate:"required"`
	ImageURLs        []string   `json:"imageUrls" validate:"required,min=1"`
	Price            string     `json:"price" validate:"required"`
	CategoryID       string     `json:"categoryId" validate:"required"`
	SubcategoryID    string     `json:"subcategoryId"`
	SpecializationID string     `json:"specializationId"`
	Country          string     `json:"country"`
	ProductLocation  string     `json:"productLocation" validate:"required"`
	Coordinates      [2]float64 `json:"coordinates"`
	SellerTerms      string     `json:"sellerTerms"`
}

type listingResponse struct {
	ID               string                `json:"id"`
	SellerID         string                `json:"sellerId"`
	Seller           *entity.PublicProfile `json:"seller,omitempty"`
	Contact          entity.Contact        `json:"contact"`
	ProductTitle     string                `json:"productTitle"`
	Description      string                `json:"description"`
	ImageURLs        []string              `json:"imageUrls"`
	Price            string                `json:"price"`
	Featured         bool                  `json:"featured"`
	Likes            int64                 `json:"likes"`
	Impressions      int64                 `json:"impressions"`
	CategoryID       string                `json:"categoryId"`
	SubcategoryID    string                `json:"subcategoryId,omitempty"`
	SpecializationID string                `json:"specializationId,omitempty"`
	Location         entity.Location       `json:"location"`
	Policies         entity.Policies       `json:"policies"`
}

func toListingResponse(l *entity.Listing) listingResponse {
	return listingResponse{
		ID:               l.ID,
		SellerID:         l.SellerID,
		Seller:           l.Seller,
		Contact:          l.Contact,
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
		Location:         l.Location,
		Policies:         l.Policies,
	}
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createListingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	listing, err := h.listingUC.CreateListing(r.Context(), usecase.CreateListingInput{
		SellerID:         middleware.UserIDFromContext(r.Context()),
		ContactPhone:     req.ContactPhone,
		ContactEmail:     req.ContactEmail,
		ProductTitle:     req.ProductTitle,
		Description:      req.Description,
		ImageURLs:        req.ImageURLs,
		Price:            req.Price,
		CategoryID:       req.CategoryID,
		SubcategoryID:    req.SubcategoryID,
		SpecializationID: req.SpecializationID,
		Country:          req.Country,
		ProductLocation:  req.ProductLocation,
		Coordinates:      req.Coordinates,
		SellerTerms:      req.SellerTerms,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ListingsCreatedTotal.Inc()
	}
	respondJSON(w, http.StatusCreated, toListingResponse(listing))
}

type counterResponse struct {
	Count int64 `json:"count"`
}

func (h *ListingHandler) Like(w http.ResponseWriter, r *http.Request) {
	count, err := h.listingUC.Like(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if h.metrics != nil {
		h.metrics.LikesTotal.Inc()
	}
	respondJSON(w, http.StatusOK, counterResponse{Count: count})
}

func (h *ListingHandler) Impression(w http.ResponseWriter, r *http.Request) {
	count, err := h.listingUC.RecordImpression(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ImpressionsTotal.Inc()
	}
	respondJSON(w, http.StatusOK, counterResponse{Count: count})
}

func (h *ListingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	listing, err := h.listingUC.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toListingResponse(listing))
}

func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listingUC.ListListings(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	out := make([]listingResponse, len(listings))
	for i, l := range listings {
		out[i] = toListingResponse(l)
	}
	respondJSON(w, http.StatusOK, out)
}

// UploadPhoto accepts a multipart form with a "photo" file field.
func (h *ListingHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "photo file field is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read photo"})
		return
	}

	url, err := h.listingUC.UploadPhoto(r.Context(), chi.URLParam(r, "id"), header.Filename, data)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"url": url})
}
