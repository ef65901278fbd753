// @title QuizCraft AI API
// @version 1.0
// @description AI-powered quiz generation from study material.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizcraft/internal/adapter"
	"quizcraft/internal/adapter/quizgen"
	"quizcraft/internal/cache"
	"quizcraft/internal/config"
	"quizcraft/internal/domain"
	"quizcraft/internal/handler"
	"quizcraft/internal/logger"
	"quizcraft/internal/middleware"
	"quizcraft/internal/repository"
	"quizcraft/internal/service"
	"quizcraft/internal/synth"
	"quizcraft/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger logs every HTTP request with timing information.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// User store. In-memory; the repository interface is where a persistent
	// implementation would plug in.
	userRepository := repository.NewMemoryUserRepository()

	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	if err := authService.SeedAdminUser(context.Background()); err != nil {
		appLogger.Fatal("Failed to seed admin user", zap.Error(err))
	}
	appLogger.Info("AuthService initialized", zap.String("admin_email", cfg.Admin.Email))

	// Redis-backed response cache. Optional: without an address, or when
	// the server is unreachable, generation simply runs uncached.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, quiz responses will not be cached", zap.Error(err))
		} else {
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("RedisCacheAdapter initialized", zap.String("address", cfg.Redis.Address))
		}
	}

	// Provider generator. A missing API key is a supported configuration;
	// the quiz service goes straight to the local synthesizer.
	var generator domain.QuizGenerator
	if cfg.Provider.APIKey != "" {
		g, err := quizgen.NewOpenRouterGenerator(cfg.Provider, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create provider generator", zap.Error(err))
		}
		generator = g
		appLogger.Info("Provider generator initialized", zap.String("model", cfg.Provider.Model))
	} else {
		appLogger.Warn("No provider API key configured, quizzes will use local generation")
	}

	synthesizer := synth.NewSynthesizer(rand.New(rand.NewSource(time.Now().UnixNano())))
	validator := validation.NewValidator(cfg.Auth.PasswordMinLength)

	// The admin panel can replace the provider credential at runtime; the
	// callback rebuilds the generator and swaps it into the quiz service.
	// quizService is assigned right below, before any request can run the
	// callback.
	var quizService service.QuizService
	adminService := service.NewAdminService(userRepository, cfg.Admin, cfg.Provider.APIKey, func(apiKey string) error {
		providerCfg := cfg.Provider
		providerCfg.APIKey = apiKey
		g, err := quizgen.NewOpenRouterGenerator(providerCfg, appLogger)
		if err != nil {
			return err
		}
		quizService.SetGenerator(g)
		return nil
	})

	quizService = service.NewQuizService(
		generator,
		synthesizer,
		validator,
		adminService,
		cacheAdapter,
		cfg.Redis.QuizCacheTTL,
	)

	authHandler := handler.NewAuthHandler(authService)
	quizHandler := handler.NewQuizHandler(quizService)
	pdfHandler := handler.NewPDFHandler(adminService, cfg.PDF)
	adminHandler := handler.NewAdminHandler(adminService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    int(cfg.PDF.MaxFileSize),
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	apiGroup := app.Group("/api")
	apiGroup.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})

	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/verify", authHandler.Verify)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)

	apiGroup.Post("/extract-pdf-text", pdfHandler.ExtractText)
	apiGroup.Post("/generate-quiz", middleware.Protected(authService), quizHandler.GenerateQuiz)

	adminGroup := apiGroup.Group("/admin", middleware.Protected(authService), middleware.AdminOnly())
	adminGroup.Get("/stats", adminHandler.GetStats)
	adminGroup.Get("/config", adminHandler.GetConfig)
	adminGroup.Post("/config/api", adminHandler.UpdateAPIConfig)
	adminGroup.Post("/config/system", adminHandler.UpdateSystemConfig)
	adminGroup.Get("/users", adminHandler.ListUsers)

	// Graceful shutdown on SIGINT/SIGTERM.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		appLogger.Info("Starting server", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server stopped unexpectedly", zap.Error(err))
		}
	}()

	<-shutdown
	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
