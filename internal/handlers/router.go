package handlers

import (
	"net/http"

	"photo-sharing-backend/internal/auth"
	"photo-sharing-backend/internal/middleware"
	"photo-sharing-backend/internal/services"
	"photo-sharing-backend/internal/storage"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// RouterDeps are the services the HTTP API is built on
type RouterDeps struct {
	Users          *services.UserService
	Photos         *services.PhotoService
	Comments       *services.CommentService
	Gallery        *services.GalleryService
	Hub            *services.Hub
	Images         storage.ImageStore
	Strategy       auth.Strategy
	AllowedOrigins []string
}

// NewRouter wires every route of the API
func NewRouter(d RouterDeps) http.Handler {
	authHandler := NewAuthHandler(d.Users, d.Strategy)
	userHandler := NewUserHandler(d.Users)
	photoHandler := NewPhotoHandler(d.Photos, d.Gallery, d.Images)
	commentHandler := NewCommentHandler(d.Comments)
	wsHandler := NewWebSocketHandler(d.Hub, d.Strategy, d.AllowedOrigins)

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public routes
	r.Post("/admin/login", authHandler.Login)
	r.Post("/user", userHandler.CreateUser)
	r.Get("/user/list", userHandler.ListUsers)
	r.Get("/users", userHandler.ListUsers)
	r.Get("/users/{userId}", userHandler.GetUser)
	r.Get("/photosOfUser/{userId}", photoHandler.ListPhotosOfUser)
	r.Get("/photos/user/{userId}", photoHandler.GetUserPhotosWithComments)
	r.Get("/images/{filename}", photoHandler.ServeImage)
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(d.Strategy))
		r.Post("/admin/logout", authHandler.Logout)
		r.Post("/photos/new", photoHandler.UploadPhoto)
		r.Post("/commentsOfPhoto/{photo_id}", commentHandler.CreateComment)
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
