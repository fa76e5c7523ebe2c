package router

import (
	"log"
	"net/http"

	"github.com/anonto42/petsocial/backend/internal/handlers"
	"github.com/anonto42/petsocial/backend/internal/middleware"
	"github.com/anonto42/petsocial/backend/internal/repositories"
	"github.com/anonto42/petsocial/backend/internal/services"
	"github.com/anonto42/petsocial/backend/validators"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
)

// Dependencies are the persistence and auth collaborators the routes are built on
type Dependencies struct {
	Users        repositories.UserRepository
	Posts        repositories.PostRepository
	PetProfiles  repositories.PetProfileRepository
	Tokens       *middleware.JWTManager
	FirebaseAuth middleware.IDTokenVerifier // Optional, enables Firebase ID tokens
}

// New builds a fully configured Echo instance
func New(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	SetupMiddleware(e)
	SetupRoutes(e, deps)
	return e
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.RequestIDWithConfig(eMiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(eMiddleware.RequestLogger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "API running")
	})

	// --- Initialize Services ---
	credentials := services.NewCredentialStore(deps.Users)
	registry := services.NewPetProfileRegistry(deps.PetProfiles)
	feed := services.NewPostFeed(deps.Posts)

	// --- Session authentication ---
	verifiers := []middleware.TokenVerifier{deps.Tokens}
	if deps.FirebaseAuth != nil {
		verifiers = append(verifiers, middleware.NewFirebaseVerifier(deps.FirebaseAuth, credentials))
		log.Println("Firebase ID tokens accepted.")
	}
	requireAuth := middleware.Auth(verifiers...)

	api := e.Group("/api")

	// User registration
	handlers.NewUserHandler(credentials).RegisterUserRoutes(api)
	log.Println("User routes configured.")

	// Token exchange
	handlers.NewAuthHandler(credentials, deps.Tokens, deps.FirebaseAuth).RegisterAuthRoutes(api, requireAuth)
	log.Println("Auth routes configured.")

	// Post routes
	handlers.NewPostHandler(feed, credentials).RegisterPostRoutes(api, requireAuth)
	log.Println("Post routes configured.")

	// Pet profile routes
	handlers.NewProfileHandler(registry, credentials).RegisterProfileRoutes(api, requireAuth)
	log.Println("Profile routes configured.")

	log.Println("All routes configured.")
}
