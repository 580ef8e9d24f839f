package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/your-username/game-event-analytics/internal/analytics"
	"github.com/your-username/game-event-analytics/internal/api"
	"github.com/your-username/game-event-analytics/internal/auth"
	"github.com/your-username/game-event-analytics/internal/config"
	"github.com/your-username/game-event-analytics/internal/database"
	"github.com/your-username/game-event-analytics/internal/session"
)

var version = "dev"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file found")
	}

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_LEVEL") == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Info().Str("version", version).Msg("Starting Game Event Analytics")

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize per-platform database connections
	db, err := database.New(cfg.Database, cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Session state and auth
	authManager := auth.NewManager(cfg.Session.JWTSecret, cfg.Session.TokenTTL)
	store := session.NewStore(cfg.Session.IdleTTL)

	// Analysis service and handlers
	svc := analytics.NewService(db, cfg.Database.TablePrefix)
	sessionHandler := api.NewSessionHandler(authManager, store)
	analyzeHandler := api.NewAnalyzeHandler(svc, store)
	eventsHandler := api.NewEventsHandler(svc)

	// Setup routes
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(90 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:3001"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", api.HealthCheck(db))
		r.Post("/session", sessionHandler.CreateSession)
		r.Get("/events", eventsHandler.ListEvents)

		// Session-scoped endpoints
		r.Group(func(r chi.Router) {
			r.Use(authManager.Middleware)

			r.Route("/session/periods", func(r chi.Router) {
				r.Get("/", sessionHandler.ListPeriods)
				r.Post("/", sessionHandler.AddPeriod)
				r.Delete("/", sessionHandler.ClearPeriods)
				r.Delete("/{id}", sessionHandler.RemovePeriod)
			})

			r.Post("/analyze", analyzeHandler.Analyze)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Server shutdown failed")
		}
		close(done)
	}()

	log.Info().Str("port", cfg.Server.Port).Msg("Server started")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Server failed to start")
	}

	<-done
	log.Info().Msg("Server stopped")
}
