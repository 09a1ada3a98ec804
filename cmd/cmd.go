package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photo-sharing-backend/internal/auth"
	"photo-sharing-backend/internal/config"
	"photo-sharing-backend/internal/handlers"
	"photo-sharing-backend/internal/services"
	"photo-sharing-backend/internal/storage"
	"photo-sharing-backend/internal/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	configPath := os.Getenv("PHOTOSHARE_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := store.Open(context.Background(), cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("Failed to open database")
	}
	defer db.Close()

	images, err := newImageStore(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("Failed to create image store")
	}

	strategy, err := auth.New(cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth strategy")
	}
	log.Info().Str("strategy", cfg.Auth.Strategy).Msg("Authentication configured")

	// Initialize services
	hub := services.NewHub()
	userService := services.NewUserService(db.Users)
	photoService := services.NewPhotoService(db.Photos, db.Users, images, cfg.Server.PublicURL, hub)
	commentService := services.NewCommentService(db.Comments, db.Photos, db.Users, hub)
	galleryService := services.NewGalleryService(db.Users, db.Comments, photoService)

	router := handlers.NewRouter(handlers.RouterDeps{
		Users:          userService,
		Photos:         photoService,
		Comments:       commentService,
		Gallery:        galleryService,
		Hub:            hub,
		Images:         images,
		Strategy:       strategy,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func newImageStore(ctx context.Context, cfg config.StorageConfig) (storage.ImageStore, error) {
	switch cfg.Driver {
	case "s3":
		return storage.NewS3Store(ctx, cfg.AWS)
	default:
		return storage.NewLocalStore(cfg.ImageDir)
	}
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
