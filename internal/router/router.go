package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/bryokn/ClassiConnect/internal/handler"
	"github.com/bryokn/ClassiConnect/internal/middleware"
	"github.com/bryokn/ClassiConnect/internal/platform/metrics"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	Listing     *handler.ListingHandler
	Interaction *handler.InteractionHandler
	Comment     *handler.CommentHandler
	Chat        *handler.ChatHandler
	Category    *handler.CategoryHandler
}

// New assembles the HTTP route table. Likes, impressions and comments stay
// public, matching the client which exposes them without a session; the
// interaction and chat routes require identity.
func New(h Handlers, resolver middleware.TokenResolver, m *metrics.Manager, logger *zap.Logger) *chi.Mux {
	mux := chi.NewRouter()

	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.RequestLogger(logger))
	if m != nil {
		mux.Use(middleware.Metrics(m))
	}
	mux.Use(chimw.Recoverer)

	mux.Post("/api/auth/signup", h.Auth.Signup)
	mux.Post("/api/auth/login", h.Auth.Login)

	mux.Get("/api/listings", h.Listing.List)
	mux.Get("/api/listings/{id}", h.Listing.GetByID)
	mux.Post("/api/listings/{id}/like", h.Listing.Like)
	mux.Post("/api/listings/{id}/impression", h.Listing.Impression)

	mux.Post("/api/comments", h.Comment.Add)
	mux.Get("/api/comments", h.Comment.List)
	mux.Post("/api/comments/react", h.Comment.React)

	mux.Get("/api/categories", h.Category.ListCategories)
	mux.Get("/api/subcategories", h.Category.ListSubcategories)
	mux.Get("/api/specializations", h.Category.ListSpecializations)

	mux.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(resolver, logger))

		r.Post("/api/listings", h.Listing.Create)
		r.Post("/api/listings/{id}/photos", h.Listing.UploadPhoto)

		r.Post("/api/listings/{id}/availability", h.Interaction.MarkUnavailable)
		r.Get("/api/listings/{id}/availability", h.Interaction.GetAvailability)
		r.Post("/api/listings/{id}/report", h.Interaction.Report)
		r.Get("/api/listings/{id}/report", h.Interaction.GetReportStatus)
		r.Post("/api/listings/{id}/callback", h.Interaction.RequestCallback)
		r.Get("/api/listings/{id}/callback", h.Interaction.GetCallbackStatus)

		r.Post("/api/chat/messages", h.Chat.Send)
		r.Get("/api/chat/messages", h.Chat.List)

		r.Post("/api/categories", h.Category.CreateCategory)
		r.Post("/api/subcategories", h.Category.CreateSubcategory)
		r.Post("/api/specializations", h.Category.CreateSpecialization)
	})

	return mux
}
