// STUB AUTH SERVER - cmd/stub_auth/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"auwalk/internal/auth"
	"auwalk/internal/handler"
	"auwalk/internal/middleware"
	"auwalk/internal/repository/memory"
	"auwalk/internal/repository/postgres"
	"auwalk/pkg/config"
	"auwalk/pkg/logger"
	"auwalk/pkg/validator"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log := logger.NewWithWriter("stub-auth", os.Stdout, cfg.Log.Level)

	if err := cfg.ValidateServer(); err != nil {
		log.Fatal("Invalid configuration", map[string]interface{}{"error": err.Error()})
	}

	// The probe's valid credentials always exist so it can be pointed here as-is.
	seedSenha, err := auth.HashSenha(cfg.Probe.Valid.Senha)
	if err != nil {
		log.Fatal("Failed to hash seed password", map[string]interface{}{"error": err.Error()})
	}

	var (
		repo   auth.Repository
		pinger handler.Pinger
	)
	if cfg.Database.URL == "" {
		mem := memory.NewUsuarioRepository()
		mem.Add(cfg.Probe.Valid.Email, seedSenha)
		repo = mem
		log.Info("Using in-memory user store", map[string]interface{}{"seeded": cfg.Probe.Valid.Email})
	} else {
		if cfg.Database.AutoMigrate {
			if err := postgres.MigrateUp(cfg.Database.URL); err != nil {
				log.Fatal("Failed to migrate database", map[string]interface{}{"error": err.Error()})
			}
		}

		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatal("Failed to connect to database", map[string]interface{}{"error": err.Error()})
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

		pgRepo := postgres.NewUsuarioRepository(db)
		if cfg.Database.AutoMigrate {
			if _, err := pgRepo.Ensure(context.Background(), cfg.Probe.Valid.Email, seedSenha); err != nil {
				log.Fatal("Failed to seed usuario", map[string]interface{}{"error": err.Error()})
			}
		}
		repo = pgRepo
		pinger = db
	}

	// Initialize services
	authService := auth.NewService(repo, cfg.JWT.Secret, cfg.JWT.Expiration)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, validator.New(), log)
	systemHandler := handler.NewSystemHandler("stub-auth", pinger)

	// Setup router
	r := mux.NewRouter()

	// Middleware
	r.Use(middleware.CORS)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.NewLoggingMiddleware(log).Log)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recovery(log))

	// Routes
	r.HandleFunc("/health", systemHandler.Health).Methods("GET")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Protected routes
	authMW := middleware.NewAuthMiddleware(authService)
	protected := r.PathPrefix("/auth").Subrouter()
	protected.Use(authMW.Authenticate)
	protected.HandleFunc("/me", authHandler.Me).Methods("GET")

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		log.Info("Stub auth server starting", map[string]interface{}{"port": cfg.Server.Port})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Server stopped", nil)
}
