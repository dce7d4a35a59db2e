package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bryokn/ClassiConnect/internal/entity"
	"github.com/bryokn/ClassiConnect/internal/middleware"
	"github.com/bryokn/ClassiConnect/internal/platform/metrics"
	"github.com/bryokn/ClassiConnect/internal/usecase"
)

type InteractionHandler struct {
	interactionUC *usecase.InteractionUseCase
	metrics       *metrics.Manager
	validate      *validator.Validate
	logger        *zap.Logger
}

func NewInteractionHandler(uc *usecase.InteractionUseCase, m *metrics.Manager, logger *zap.Logger) *InteractionHandler {
	return &InteractionHandler{
		interactionUC: uc,
		metrics:       m,
		validate:      validator.New(),
		logger:        logger,
	}
}

type availabilityResponse struct {
	IsAvailable bool   `json:"isAvailable"`
	MarkedBy    string `json:"markedBy,omitempty"`
}

func (h *InteractionHandler) MarkUnavailable(w http.ResponseWriter, r *http.Request) {
	record, err := h.interactionUC.MarkUnavailable(r.Context(),
		chi.URLParam(r, "id"), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, availabilityResponse{IsAvailable: record.IsAvailable, MarkedBy: record.UserID})
}

func (h *InteractionHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	marked, err := h.interactionUC.GetStatus(r.Context(), entity.KindAvailability,
		chi.URLParam(r, "id"), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"markedUnavailable": marked})
}

type reportRequest struct {
	Content string `json:"content" validate:"required,max=200"`
}

func (h *InteractionHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	record, err := h.interactionUC.ReportAbuse(r.Context(),
		chi.URLParam(r, "id"), middleware.UserIDFromContext(r.Context()), req.Content)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ReportsTotal.Inc()
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(record.ReportStatus)})
}

func (h *InteractionHandler) GetReportStatus(w http.ResponseWriter, r *http.Request) {
	reported, err := h.interactionUC.GetStatus(r.Context(), entity.KindAbuseReport,
		chi.URLParam(r, "id"), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"hasReported": reported})
}

func (h *InteractionHandler) RequestCallback(w http.ResponseWriter, r *http.Request) {
	record, err := h.interactionUC.RequestCallback(r.Context(),
		chi.URLParam(r, "id"), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(record.CallbackStatus)})
}

func (h *InteractionHandler) GetCallbackStatus(w http.ResponseWriter, r *http.Request) {
	requested, err := h.interactionUC.GetStatus(r.Context(), entity.KindCallbackRequest,
		chi.URLParam(r, "id"), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"hasRequested": requested})
}
