package handler

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bryokn/ClassiConnect/internal/entity"
	"github.com/bryokn/ClassiConnect/internal/usecase"
)

type CommentHandler struct {
	commentUC *usecase.CommentUseCase
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewCommentHandler(commentUC *usecase.CommentUseCase, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		commentUC: commentUC,
		validate:  validator.New(),
		logger:    logger,
	}
}

type addCommentRequest struct {
	ListingID string `json:"listing" validate:"required"`
	Text      string `json:"text" validate:"required"`
	Username  string `json:"username" validate:"required"`
}

type commentResponse struct {
	ID       string           `json:"id"`
	Listing  *listingResponse `json:"listing,omitempty"`
	Text     string           `json:"text"`
	Username string           `json:"username"`
	Date     time.Time        `json:"date"`
	Likes    int64            `json:"likes"`
	Dislikes int64            `json:"dislikes"`
}

func toCommentResponse(c *entity.Comment) commentResponse {
	resp := commentResponse{
		ID:       c.ID,
		Text:     c.Text,
		Username: c.Username,
		Date:     c.Date,
		Likes:    c.Likes,
		Dislikes: c.Dislikes,
	}
	if c.Listing != nil {
		l := toListingResponse(c.Listing)
		resp.Listing = &l
	}
	return resp
}

func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	comment, err := h.commentUC.AddComment(r.Context(), usecase.AddCommentInput{
		ListingID: req.ListingID,
		Text:      req.Text,
		Username:  req.Username,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCommentResponse(comment))
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentUC.ListComments(r.Context(), r.URL.Query().Get("listing"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	out := make([]commentResponse, len(comments))
	for i, c := range comments {
		out[i] = toCommentResponse(c)
	}
	respondJSON(w, http.StatusOK, out)
}

type reactRequest struct {
	CommentID string `json:"commentId" validate:"required"`
	Action    string `json:"action" validate:"required"`
}

func (h *CommentHandler) React(w http.ResponseWriter, r *http.Request) {
	var req reactRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	comment, err := h.commentUC.React(r.Context(), req.CommentID, req.Action)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toCommentResponse(comment))
}
