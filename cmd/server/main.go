package main

import (
	"context"
	"fmt"
	"log"

	"github.com/panchofdez/portfolio-api/adapters/event"
	httpAdapter "github.com/panchofdez/portfolio-api/adapters/http"
	"github.com/panchofdez/portfolio-api/adapters/media_storage"
	"github.com/panchofdez/portfolio-api/adapters/persistence"
	authUC "github.com/panchofdez/portfolio-api/internal/application/usecase/auth"
	portfolioUC "github.com/panchofdez/portfolio-api/internal/application/usecase/portfolio"
	searchUC "github.com/panchofdez/portfolio-api/internal/application/usecase/search"
	"github.com/panchofdez/portfolio-api/internal/config"
	"github.com/panchofdez/portfolio-api/pkg/auth"
	"github.com/panchofdez/portfolio-api/pkg/logger"
	"github.com/panchofdez/portfolio-api/pkg/tracing"
)

func main() {
	fmt.Println("Start Portfolio API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	if cfg.Jaeger.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-api")
		if err != nil {
			log.Fatalf("FATAL: cannot init tracing: %v", err)
		}
		defer tp.Shutdown(context.Background())
	}

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

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

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	portfolioRepo := persistence.NewPostgresPortfolioRepo(dbPool, appLogger)
	commentRepo := persistence.NewPostgresCommentRepo(dbPool)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize uploader: %v", err)
	}

	// Use Cases
	assembler := portfolioUC.NewAssembler(userRepo, commentRepo)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	profileUseCase := portfolioUC.NewProfileUseCase(portfolioRepo, userRepo, uploader, kafkaClient, assembler, appLogger)
	timelineUseCase := portfolioUC.NewTimelineUseCase(portfolioRepo, kafkaClient, assembler, appLogger)
	videoUseCase := portfolioUC.NewVideoUseCase(portfolioRepo, kafkaClient, assembler, appLogger)
	collectionUseCase := portfolioUC.NewCollectionUseCase(portfolioRepo, uploader, kafkaClient, assembler, cfg.Cloudinary.Folder, appLogger)
	uploadUseCase := portfolioUC.NewUploadUseCase(uploader, cfg.Cloudinary.Folder, appLogger)
	searchUseCase := searchUC.NewSearchUseCase(portfolioRepo, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase)
	portfolioHandler := httpAdapter.NewPortfolioHandler(
		profileUseCase,
		timelineUseCase,
		videoUseCase,
		collectionUseCase,
		uploadUseCase,
		appLogger,
	)
	searchHandler := httpAdapter.NewSearchHandler(searchUseCase)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	rateLimit := httpAdapter.RateLimitMiddleware(redisClient, cfg.RateLimit.Max, cfg.RateLimit.Window)

	router := httpAdapter.SetupRouter(
		authHandler,
		portfolioHandler,
		searchHandler,
		authMiddleware,
		httpAdapter.RequestIDMiddleware(),
		rateLimit,
		httpAdapter.ErrorMiddleware(appLogger),
	)

	log.Printf("Server running on port %s", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
