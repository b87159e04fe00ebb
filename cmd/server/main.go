package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/redoficios2025-Inicial/redoficios-gateway/adapters/event"
	httpAdapter "github.com/redoficios2025-Inicial/redoficios-gateway/adapters/http"
	"github.com/redoficios2025-Inicial/redoficios-gateway/adapters/persistence"
	"github.com/redoficios2025-Inicial/redoficios-gateway/adapters/upstream"
	authUC "github.com/redoficios2025-Inicial/redoficios-gateway/internal/application/usecase/auth"
	directoryUC "github.com/redoficios2025-Inicial/redoficios-gateway/internal/application/usecase/directory"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/application/usecase/notifications"
	profileUC "github.com/redoficios2025-Inicial/redoficios-gateway/internal/application/usecase/profile"
	ratingUC "github.com/redoficios2025-Inicial/redoficios-gateway/internal/application/usecase/rating"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/config"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/auth"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/logger"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/tracing"
)

func main() {
	fmt.Println("Starting RedOficios Gateway API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	if cfg.Tracing.Enabled {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "redoficios-gateway")
		if err != nil {
			log.Fatalf("FATAL: cannot init tracing: %v", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				appLogger.Error("Failed to shut down tracer provider", err)
			}
		}()
	}

	// Initialize dependencies
	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot init Kafka: %v", err)
	}
	defer kafkaClient.Close()

	upstreamClient := upstream.NewClient(cfg, appLogger)

	// Backend ports
	profileDirectory := upstream.NewProfileDirectory(upstreamClient)
	contractService := upstream.NewContractService(upstreamClient)
	ratingService := upstream.NewRatingService(upstreamClient)

	// Stores
	sessionStore := persistence.NewRedisSessionStore(redisClient, cfg.Session.IdleTimeout)
	handoffStore := persistence.NewRedisHandoffStore(redisClient, cfg.Session.HandoffTTL)
	activityStore := persistence.NewRedisActivityStore(redisClient)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	registry := notifications.NewRegistry()

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(upstreamClient, profileDirectory, sessionStore, jwtSvc, appLogger)
	logoutUseCase := authUC.NewLogoutUseCase(sessionStore, registry, appLogger)

	getProfileUseCase := profileUC.NewGetProfileUseCase(profileDirectory, appLogger)
	updateProfileUseCase := profileUC.NewUpdateProfileUseCase(profileDirectory, sessionStore, appLogger)

	syncUseCase := notifications.NewSyncUseCase(contractService, registry, appLogger)
	markReadUseCase := notifications.NewMarkReadUseCase(registry)
	resolveUseCase := notifications.NewResolveUseCase(contractService, registry, kafkaClient, appLogger)
	deleteUseCase := notifications.NewDeleteUseCase(contractService, registry, kafkaClient, appLogger)
	contactUseCase := notifications.NewContactUseCase(registry)
	startRatingUseCase := notifications.NewStartRatingUseCase(registry, handoffStore)
	hireUseCase := notifications.NewHireUseCase(contractService, profileDirectory, kafkaClient, appLogger)
	feedUseCase := notifications.NewFeedUseCase(activityStore)

	checkRatingUseCase := ratingUC.NewCheckUseCase(ratingService, handoffStore, cfg.Rating.EditWindow, appLogger)
	submitRatingUseCase := ratingUC.NewSubmitUseCase(ratingService, kafkaClient, cfg.Rating.EditWindow, appLogger)
	deleteRatingUseCase := ratingUC.NewDeleteUseCase(ratingService, kafkaClient, cfg.Rating.EditWindow, appLogger)

	listWorkersUseCase := directoryUC.NewListWorkersUseCase(profileDirectory, cfg.Directory.PageSize, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase, logoutUseCase)
	profileHandler := httpAdapter.NewProfileHandler(getProfileUseCase, updateProfileUseCase)
	notificationHandler := httpAdapter.NewNotificationHandler(
		syncUseCase,
		markReadUseCase,
		resolveUseCase,
		deleteUseCase,
		contactUseCase,
		startRatingUseCase,
		hireUseCase,
		feedUseCase,
	)
	ratingHandler := httpAdapter.NewRatingHandler(checkRatingUseCase, submitRatingUseCase, deleteRatingUseCase)
	directoryHandler := httpAdapter.NewDirectoryHandler(listWorkersUseCase)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc, sessionStore)

	// Setup Gin router
	router := gin.Default()
	router.Use(httpAdapter.ErrorHandler(appLogger))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		api.POST("/auth/login", authHandler.Login)

		private := api.Group("/")
		private.Use(authMiddleware)
		{
			private.POST("/auth/logout", authHandler.Logout)

			private.GET("/profile", profileHandler.GetOwnProfile)
			private.PUT("/profile", profileHandler.UpdateProfile)
			private.GET("/profiles/:id", profileHandler.GetProfile)

			private.GET("/workers", directoryHandler.ListWorkers)

			notificationsGroup := private.Group("/notifications")
			{
				notificationsGroup.GET("", notificationHandler.List)
				notificationsGroup.POST("/read", notificationHandler.MarkRead)
				notificationsGroup.POST("/:id/accept", notificationHandler.Accept)
				notificationsGroup.POST("/:id/reject", notificationHandler.Reject)
				notificationsGroup.DELETE("/:id", notificationHandler.Delete)
				notificationsGroup.GET("/:id/contact", notificationHandler.Contact)
				notificationsGroup.POST("/:id/rating", notificationHandler.StartRating)
			}

			private.POST("/contracts", notificationHandler.Hire)
			private.GET("/feed", notificationHandler.Feed)

			ratings := private.Group("/ratings")
			{
				ratings.GET("/pending", ratingHandler.Check)
				ratings.POST("", ratingHandler.Submit)
				ratings.DELETE("", ratingHandler.Delete)
			}
		}
	}

	log.Printf("Server running on port %s", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
