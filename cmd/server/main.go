package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"lingotaboo/internal/ai"
	"lingotaboo/internal/config"
	"lingotaboo/internal/database"
	"lingotaboo/internal/handlers"
	"lingotaboo/internal/repository"
	"lingotaboo/internal/security"
	"lingotaboo/internal/service"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	ctx := context.Background()
	if err := db.RunMigrations(ctx, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	cardRepo := repository.NewCardRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	usageRepo := repository.NewUsageRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Initialize services
	aiClient := ai.NewClient(cfg)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenDuration)
	cardService := service.NewCardService(cardRepo)
	usageService := service.NewUsageService(usageRepo)
	gameService := service.NewGameService(sessionRepo, cardRepo, aiClient, aiClient, aiClient, usageService, cfg.AITimeout)
	statsService := service.NewStatsService(statsRepo, sessionRepo)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Initialize handlers
	limiter := security.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	middleware := handlers.NewMiddleware(authService, limiter)
	authHandler := handlers.NewAuthHandler(authService)
	cardHandler := handlers.NewCardHandler(cardService)
	gameHandler := handlers.NewGameHandler(gameService)
	statsHandler := handlers.NewStatsHandler(statsService, authService, emailService, usageService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))

	// Card catalog
	mux.HandleFunc("GET /api/cards", middleware.RequireAuth(cardHandler.GetCards))
	mux.HandleFunc("GET /api/cards/categories", middleware.RequireAuth(cardHandler.GetCategories))

	// Game sessions. Submit carries one oracle call per request, so it is
	// rate limited on top of auth.
	mux.HandleFunc("POST /api/game/sessions", middleware.RequireAuth(middleware.RateLimit(gameHandler.StartSession)))
	mux.HandleFunc("GET /api/game/sessions", middleware.RequireAuth(gameHandler.ListSessions))
	mux.HandleFunc("GET /api/game/sessions/{id}", middleware.RequireAuth(gameHandler.GetSession))
	mux.HandleFunc("POST /api/game/sessions/{id}/submit", middleware.RequireAuth(middleware.RateLimit(gameHandler.Submit)))
	mux.HandleFunc("POST /api/game/sessions/{id}/finish", middleware.RequireAuth(gameHandler.Finish))

	// Stats
	mux.HandleFunc("GET /api/game/stats", middleware.RequireAuth(statsHandler.GetStats))
	mux.HandleFunc("GET /api/game/history", middleware.RequireAuth(statsHandler.GetHistory))
	mux.HandleFunc("POST /api/game/stats/digest", middleware.RequireAuth(middleware.RateLimit(statsHandler.SendDigest)))

	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
