package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/matejhrz/pixgram/backend/internal/handlers"
	"github.com/matejhrz/pixgram/backend/internal/middleware"
	"github.com/matejhrz/pixgram/backend/internal/models"
	"github.com/matejhrz/pixgram/backend/internal/repositories"
	"github.com/matejhrz/pixgram/backend/internal/service"
	"github.com/matejhrz/pixgram/backend/pkg/blob"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Post{},
		&models.Story{},
		&models.Like{},
		&models.Comment{},
		&models.SavedPost{},
		&models.Follow{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Image blob store on GridFS
	blobStore, err := blob.NewGridFSStore(mgClient.Database("pixgram"))
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	profileRepo := repositories.NewPostgresProfileRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	storyRepo := repositories.NewPostgresStoryRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	savedPostRepo := repositories.NewPostgresSavedPostRepository(pgdb)

	// --- Initialize services ---
	storyService := service.NewStoryService(storyRepo, userRepo)
	feedService := service.NewFeedService(postRepo, likeRepo, savedPostRepo, followRepo, commentRepo, blobStore)
	profileService := service.NewProfileService(profileRepo, userRepo)

	// --- Public routes ---
	fileHandler := handlers.NewFileHandler(blobStore)
	fileHandler.RegisterFileRoutes(e)

	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())

	profileHandler := handlers.NewProfileHandler(profileService)
	profileHandler.RegisterProfileRoutes(api)

	postHandler := handlers.NewPostHandler(feedService, blobStore)
	postHandler.RegisterPostRoutes(api)

	storyHandler := handlers.NewStoryHandler(storyService, blobStore)
	storyHandler.RegisterStoryRoutes(api)

	commentHandler := handlers.NewCommentHandler(feedService)
	commentHandler.RegisterCommentRoutes(api)

	likeHandler := handlers.NewLikeHandler(feedService)
	likeHandler.RegisterLikeRoutes(api)

	savedPostHandler := handlers.NewSavedPostHandler(feedService)
	savedPostHandler.RegisterSavedPostRoutes(api)

	followHandler := handlers.NewFollowHandler(feedService)
	followHandler.RegisterFollowRoutes(api)

	log.Println("All routes configured.")
}
