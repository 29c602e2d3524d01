package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/audio"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/bible"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/cache"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/config"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/constants"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/content"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/handlers"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/logger"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/services"
	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/store"
)

func main() {
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// Initialize DB
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize blob buckets
	blobs, err := store.NewBlobs(filepath.Join(cfg.DataDir, "media"))
	if err != nil {
		appLogger.Error("Failed to init blob storage", "error", err)
		os.Exit(1)
	}

	// Initialize cache and corpus source
	appCache := cache.New()
	source := bible.NewSource(cfg.CorpusURL)
	cachedSource := bible.NewCachedSource(source, appCache)

	// Initialize resolution and assembly
	resolver := audio.NewResolver(db, blobs, appLogger)
	assembler := content.NewAssembler(cachedSource, resolver, db, appCache, cfg.DefaultAudioBase, appLogger)

	// Initialize Services
	narration := services.NewNarration(db, blobs, appCache, appLogger)
	authors := services.NewAuthors(db, appCache, appLogger)

	// Initialize Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Routes
	h := handlers.NewHandler(assembler, narration, authors, db, blobs, appCache, cfg, appLogger)
	h.RegisterRoutes(r)

	// Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
