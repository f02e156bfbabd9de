package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pulsefeed/backend/internal/feed"
	"github.com/pulsefeed/backend/internal/handlers"
	"github.com/pulsefeed/backend/internal/middleware"
	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"github.com/pulsefeed/backend/pkg/config"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Repositories bundles the store implementations the handlers depend on.
type Repositories struct {
	Users     repositories.UserRepository
	Posts     repositories.PostRepository
	Comments  repositories.CommentRepository
	Reactions repositories.ReactionRepository
	Hashtags  repositories.HashtagRepository
}

// NewPostgresRepositories runs the schema migrations and builds the
// PostgreSQL-backed repositories.
func NewPostgresRepositories(db *gorm.DB) (*Repositories, error) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
		&models.Hashtag{},
	)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Users:     repositories.NewPostgresUserRepository(db),
		Posts:     repositories.NewPostgresPostRepository(db),
		Comments:  repositories.NewPostgresCommentRepository(db),
		Reactions: repositories.NewPostgresReactionRepository(db),
		Hashtags:  repositories.NewPostgresHashtagRepository(db),
	}, nil
}

// NewMemoryRepositories builds repositories over a single in-memory store,
// used for local development without a database.
func NewMemoryRepositories() *Repositories {
	store := repositories.NewMemoryStore()
	return &Repositories{
		Users:     store,
		Posts:     store,
		Comments:  store,
		Reactions: store,
		Hashtags:  store,
	}
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, log zerolog.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, repos *Repositories, cfg *config.Config, log zerolog.Logger) {
	feedService := feed.NewService(repos.Posts, repos.Comments, repos.Reactions, repos.Hashtags)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.Static("/media", cfg.MediaDir)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(repos.Users, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	userHandler := handlers.NewUserHandler(repos.Users)
	userHandler.RegisterProfileRoutes(api)

	postHandler := handlers.NewPostHandler(feedService, cfg.MediaDir)
	postHandler.RegisterPostRoutes(api)

	commentHandler := handlers.NewCommentHandler(feedService)
	commentHandler.RegisterCommentRoutes(api)

	reactionHandler := handlers.NewReactionHandler(feedService)
	reactionHandler.RegisterReactionRoutes(api)

	feedHandler := handlers.NewFeedHandler(feedService)
	feedHandler.RegisterFeedRoutes(api)

	hashtagHandler := handlers.NewHashtagHandler(feedService)
	hashtagHandler.RegisterHashtagRoutes(api)

	log.Info().Str("storage", cfg.Storage).Msg("routes configured")
}
