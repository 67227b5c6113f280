package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sarhne-api/internal/config"
	"github.com/noah-isme/sarhne-api/internal/database"
	"github.com/noah-isme/sarhne-api/internal/handler"
	"github.com/noah-isme/sarhne-api/internal/identity"
	"github.com/noah-isme/sarhne-api/internal/middleware"
	"github.com/noah-isme/sarhne-api/internal/models"
	"github.com/noah-isme/sarhne-api/internal/repository"
	"github.com/noah-isme/sarhne-api/internal/router"
	"github.com/noah-isme/sarhne-api/internal/service"
	"github.com/noah-isme/sarhne-api/internal/storage"
	cloud "github.com/noah-isme/sarhne-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()
	if cfg.AppEnv == "development" {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStartup()

	redisClient, err := database.ConnectRedis(startupCtx, cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var (
		files      storage.FileStorage
		staticRoot string
	)
	switch cfg.StorageDriver {
	case "cloudinary":
		files, err = cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create cloudinary client")
		}
	default:
		local := storage.NewLocalStorage(cfg.StorageRoot, logger)
		files = local
		staticRoot = local.Root()
	}

	tokens, err := service.NewTokenService(service.TokenConfig{
		Secret:       cfg.JWTSecret,
		Issuer:       cfg.JWTIssuer,
		Audience:     cfg.JWTAudience,
		DurationDays: cfg.JWTDurationDays,
		RefreshTTL:   cfg.RefreshTokenTTL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure token service")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	reactionRepo := repository.NewReactionRepository(db)

	gateway := identity.NewGateway(userRepo, cfg.JWTSecret, logger)

	authService := service.NewAuthService(gateway, userRepo, refreshTokenRepo, tokens, files, validate, logger)
	userService := service.NewUserService(userRepo, gateway, validate, logger)
	messageService := service.NewMessageService(messageRepo, userRepo, files, validate, logger)
	replyService := service.NewReplyService(messageRepo, replyRepo, validate, logger)
	reactionService := service.NewReactionService(reactionRepo, messageRepo, userRepo, redisClient, cfg.ReactionCacheTTL, validate, logger)
	seedService := service.NewSeedService(reactionRepo, reactionService, logger)

	if _, err := seedService.SeedReactionKinds(startupCtx, models.DefaultReactionTypes); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed reaction kinds")
	}

	maxUploadBytes := int64(cfg.UploadMaxMB) * 1024 * 1024

	probes := map[string]handler.HealthProbe{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if redisClient != nil {
		probes["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    int(maxUploadBytes) + 1024*1024,
	})

	middleware.Register(app, middleware.Config{
		Logger:    logger.With().Str("component", "http").Logger(),
		AccessLog: cfg.AppEnv == "development",
	})

	jwtConfig := middleware.JWTConfig{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer, Audience: cfg.JWTAudience}
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:     handler.NewAuthHandler(authService, maxUploadBytes, logger),
		UserHandler:     handler.NewUserHandler(userService, logger),
		MessageHandler:  handler.NewMessageHandler(messageService, maxUploadBytes, logger),
		ReplyHandler:    handler.NewReplyHandler(replyService, logger),
		ReactionHandler: handler.NewReactionHandler(reactionService, logger),
		HealthProbes:    probes,
		JWTMiddleware:   middleware.JWTProtected(jwtConfig),
		JWTOptional:     middleware.JWTOptional(jwtConfig),
		RoleMiddleware:  middleware.RequireRole(models.RoleUser),
		StaticRoot:      staticRoot,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
