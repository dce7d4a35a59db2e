package handler

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bryokn/ClassiConnect/internal/entity"
	"github.com/bryokn/ClassiConnect/internal/middleware"
	"github.com/bryokn/ClassiConnect/internal/usecase"
)

type ChatHandler struct {
	chatUC   *usecase.ChatUseCase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewChatHandler(chatUC *usecase.ChatUseCase, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatUC:   chatUC,
		validate: validator.New(),
		logger:   logger,
	}
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiver" validate:"required"`
	ListingID  string `json:"listingId" validate:"required"`
	Message    string `json:"message" validate:"required"`
}

type chatMessageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender"`
	ReceiverID string    `json:"receiver"`
	ListingID  string    `json:"listingId"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toChatMessageResponse(m *entity.ChatMessage) chatMessageResponse {
	return chatMessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		ListingID:  m.ListingID,
		Message:    m.Message,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	msg, err := h.chatUC.SendMessage(r.Context(), usecase.SendMessageInput{
		SenderID:   middleware.UserIDFromContext(r.Context()),
		ReceiverID: req.ReceiverID,
		ListingID:  req.ListingID,
		Message:    req.Message,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toChatMessageResponse(msg))
}

func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatUC.GetMessages(r.Context(),
		r.URL.Query().Get("listingId"), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	out := make([]chatMessageResponse, len(messages))
	for i, m := range messages {
		out[i] = toChatMessageResponse(m)
	}
	respondJSON(w, http.StatusOK, out)
}
