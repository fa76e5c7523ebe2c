package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/petsocial/backend/internal/middleware"
	"github.com/anonto42/petsocial/backend/internal/models"
	"github.com/anonto42/petsocial/backend/internal/repositories"
	"github.com/anonto42/petsocial/backend/internal/repositories/memory"
	"github.com/anonto42/petsocial/backend/internal/router"
	"github.com/anonto42/petsocial/backend/pkg/config"
	"github.com/anonto42/petsocial/backend/pkg/firebase"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if cfg.IsProduction() && cfg.JWTSecret == config.DefaultJWTSecret {
		log.Fatal("JWT_SECRET must be set in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := router.Dependencies{
		Tokens: middleware.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
	}

	switch cfg.Storage {
	case config.StorageMemory:
		log.Println("Using in-memory storage, data is lost on restart.")
		deps.Users = memory.NewUserRepo()
		deps.Posts = memory.NewPostRepo()
		deps.PetProfiles = memory.NewPetProfileRepo()
	case config.StorageMongo:
		// Initialize database connections
		db, err := config.InitDB(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize databases: %v", err)
		}
		defer db.CloseDB() // Ensure database connections are closed when main exits

		if err := db.Postgres.AutoMigrate(&models.User{}); err != nil {
			log.Fatalf("Failed to auto migrate models: %v", err)
		}
		log.Println("PostgreSQL auto-migrations completed.")

		posts := repositories.NewMongoPostRepository(db.Docs)
		profiles := repositories.NewMongoPetProfileRepository(db.Docs)
		if err := posts.EnsureIndexes(ctx); err != nil {
			log.Fatalf("Failed to create indexes: %v", err)
		}
		if err := profiles.EnsureIndexes(ctx); err != nil {
			log.Fatalf("Failed to create indexes: %v", err)
		}
		log.Println("MongoDB indexes ensured.")

		deps.Users = repositories.NewPostgresUserRepository(db.Postgres)
		deps.Posts = posts
		deps.PetProfiles = profiles
	default:
		log.Fatalf("Unknown STORAGE %q", cfg.Storage)
	}

	// Initialize Firebase
	if cfg.FirebaseCredentialsPath != "" {
		authClient, err := firebase.NewAuthClient(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		deps.FirebaseAuth = authClient
	}

	e := router.New(deps)
	e.Server.ReadTimeout = 5 * time.Second
	e.Server.WriteTimeout = 10 * time.Second

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	log.Println("Server stopped.")
}
