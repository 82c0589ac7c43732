package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/prepstack/interview-coach/internal/config"
	"github.com/prepstack/interview-coach/internal/database"
	"github.com/prepstack/interview-coach/internal/eval"
	"github.com/prepstack/interview-coach/internal/handler"
	"github.com/prepstack/interview-coach/internal/llm"
	"github.com/prepstack/interview-coach/internal/middleware"
	"github.com/prepstack/interview-coach/internal/models"
	"github.com/prepstack/interview-coach/internal/questionbank"
	"github.com/prepstack/interview-coach/internal/repository"
	"github.com/prepstack/interview-coach/internal/router"
	"github.com/prepstack/interview-coach/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Attempt{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	client, err := newLLMClient(cfg, logger)
	if err != nil {
		log.Fatalf("failed to create %s client: %v", cfg.AIProvider, err)
	}

	bank, err := questionbank.New(cfg.QuestionsDir, logger)
	if err != nil {
		log.Fatalf("failed to load question bank: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	evaluator := eval.NewEvaluator(client, cfg.MaxOutputTokens, logger)
	attemptRepo := repository.NewAttemptRepository(db)

	practiceService := service.NewPracticeService(bank, evaluator, attemptRepo, redisClient, validate, logger, service.PracticeConfig{
		Provider:     cfg.AIProvider,
		Model:        client.Model(),
		EvalCacheTTL: cfg.EvalCacheTTL,
	})

	questionHandler := handler.NewQuestionHandler(practiceService, logger)
	attemptHandler := handler.NewAttemptHandler(practiceService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		QuestionHandler: questionHandler,
		AttemptHandler:  attemptHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func newLLMClient(cfg config.Config, logger zerolog.Logger) (llm.Client, error) {
	switch strings.ToLower(cfg.AIProvider) {
	case "openai":
		return llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.ModelName,
			Timeout: cfg.GenerateTimeout,
			Logger:  logger,
		})
	default:
		genaiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.GeminiAPIKey,
		})
		if err != nil {
			return nil, err
		}
		return llm.NewGeminiClient(genaiClient, llm.GeminiConfig{
			Model:   cfg.ModelName,
			Timeout: cfg.GenerateTimeout,
			Logger:  logger,
		}), nil
	}
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
