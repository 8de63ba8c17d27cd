package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reclip-backend/internal/config"
	"reclip-backend/internal/database"
	"reclip-backend/internal/handlers"
	"reclip-backend/internal/repository"
	"reclip-backend/internal/router"
	"reclip-backend/internal/services"
	"reclip-backend/internal/storage"
	"reclip-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting Reclip Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Step 5: Initialize Storage Arena ────
	arena, err := storage.NewArena(cfg.StoragePath)
	if err != nil {
		log.Fatalf("✗ Storage arena initialization failed: %v", err)
	}
	sweeperStop := make(chan struct{})
	arena.StartSweeper(time.Duration(cfg.MediaTTLMinutes)*time.Minute, sweeperStop)
	log.Printf("✓ Storage arena ready at %s (TTL %dm)", cfg.StoragePath, cfg.MediaTTLMinutes)

	// ──── Step 6: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(
		cfg.GeminiAPIKey,
		cfg.GeminiModel,
		cfg.GeminiConcurrentReqs,
		cfg.GeminiPollMaxTries,
	)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Printf("✓ Gemini client initialized (%s)", cfg.GeminiModel)

	// ──── Initialize Services ────
	resolver := services.NewURLResolver()
	scraper := services.NewTweetScraper()
	extractor := services.NewExtractorService(resolver, scraper, cfg.YtdlpPath, cfg.FfmpegPath)
	documents := services.NewDocumentService()
	progress := services.NewProgressPublisher(redisClients.Pub)
	generationRepo := repository.NewGenerationRepo(pool)
	pipeline := services.NewPipelineService(extractor, documents, geminiService, arena, progress, generationRepo)

	// ──── Initialize Handlers ────
	repurposeHandler := handlers.NewRepurposeHandler(pipeline)
	generationHandler := handlers.NewGenerationHandler(generationRepo)

	// ──── Step 7: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.Sub)
	log.Println("✓ WebSocket hub started")

	// ──── Step 8: Start HTTP Server ────
	r := router.New(repurposeHandler, generationHandler, wsHub, arena.Root(), cfg.FrontendURL)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
		// Pipeline requests block through extraction, polling, and
		// generation; the write timeout must cover the whole run.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		close(sweeperStop)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Reclip Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws/{requestID}", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
