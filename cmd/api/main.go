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

	"github.com/noah-isme/ievms-go-api/internal/config"
	"github.com/noah-isme/ievms-go-api/internal/database"
	"github.com/noah-isme/ievms-go-api/internal/handler"
	"github.com/noah-isme/ievms-go-api/internal/middleware"
	"github.com/noah-isme/ievms-go-api/internal/models"
	"github.com/noah-isme/ievms-go-api/internal/repository"
	"github.com/noah-isme/ievms-go-api/internal/router"
	"github.com/noah-isme/ievms-go-api/internal/service"
	"github.com/noah-isme/ievms-go-api/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to storage: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Evaluation{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := repository.NewUserRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)

	authService := service.NewAuthService(userRepo, tokens, validate, logger)
	evaluationService := service.NewEvaluationService(evaluationRepo, userRepo, validate, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	evaluationHandler := handler.NewEvaluationHandler(evaluationService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       authHandler,
		EvaluationHandler: evaluationHandler,
		JWTMiddleware:     middleware.JWTProtected(tokens),
		AuthRateLimit:     middleware.RateLimit("auth", cfg.AuthRateLimit, cfg.AuthRateWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	logger.Info().Str("addr", cfg.HTTPAddress()).Str("storage", cfg.StorageDriver).Msg("server started")

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
