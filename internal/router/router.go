package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/mraihan79/inkwell/backend/internal/engine"
	"github.com/mraihan79/inkwell/backend/internal/handlers"
	"github.com/mraihan79/inkwell/backend/internal/middleware"
	"github.com/mraihan79/inkwell/backend/internal/models"
	"github.com/mraihan79/inkwell/backend/internal/repositories"
	"github.com/mraihan79/inkwell/backend/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Like{},
		&models.CommentLike{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories ---
	mongoDB := mgClient.Database(cfg.MongoDBName)
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	commentLikeRepo := repositories.NewPostgresCommentLikeRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	blogRepo := repositories.NewMongoBlogRepository(mongoDB)
	commentRepo := repositories.NewMongoCommentRepository(mongoDB)

	// --- Engagement engine ---
	engagement := engine.NewEngagement(userRepo, blogRepo, commentRepo, likeRepo, commentLikeRepo, followRepo, notificationRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Public reads (anonymous viewers pass through the visibility filter) ---
	public := e.Group("/api/v1")
	public.Use(middleware.OptionalJWTAuth())

	blogHandler := handlers.NewBlogHandler(blogRepo, engagement)
	blogHandler.RegisterPublicBlogRoutes(public)

	searchHandler := handlers.NewSearchHandler(blogRepo, engagement)
	searchHandler.RegisterSearchRoutes(public)

	profileHandler := handlers.NewProfileHandler(userRepo, engagement)
	profileHandler.RegisterPublicProfileRoutes(public)
	log.Println("Public routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuth())

	blogHandler.RegisterBlogRoutes(api)
	profileHandler.RegisterProfileRoutes(api)

	commentHandler := handlers.NewCommentHandler(engagement)
	commentHandler.RegisterCommentRoutes(api)

	followHandler := handlers.NewFollowHandler(engagement, notificationRepo)
	followHandler.RegisterFollowRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	log.Println("All routes configured.")
}
