package config

import (
	"context"
	"os"
	"time"

	"Receipt-Carbon-Backend/internal/api/handlers"
	"Receipt-Carbon-Backend/internal/api/routes"
	"Receipt-Carbon-Backend/internal/middleware"
	"Receipt-Carbon-Backend/internal/utils"
	"Receipt-Carbon-Backend/internal/utils/storage"
	"Receipt-Carbon-Backend/pkg/carbon"
	"Receipt-Carbon-Backend/pkg/jwt"
	"Receipt-Carbon-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	carbonRepository := carbon.NewCarbonRepository(db)

	// Pipeline stage clients. Configuration is injected here once; stage
	// logic never reads global config.
	contentStore := carbon.NewContentStore(s3, carbonRepository)
	ocrClient := carbon.NewOCRClient(carbon.OCRConfig{
		ServiceURL: utils.GetConfig("OCR_SERVICE_URL"),
		Language:   utils.GetConfig("OCR_LANGUAGE"),
		Timeout:    30 * time.Second,
	})
	itemExtractor, err := carbon.NewGeminiExtractor(context.Background(), carbon.GeminiConfig{
		APIKey:  utils.GetConfig("GEMINI_API_KEY"),
		Model:   utils.GetConfig("GEMINI_MODEL"),
		Timeout: 30 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	scoringClient := carbon.NewScoringClient(carbon.ScoringConfig{
		ServiceURL: utils.GetConfig("CARBON_SERVICE_URL"),
		Timeout:    60 * time.Second,
	})

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"))
	userService := user.NewUserService(userRepository, jwtService)
	carbonService := carbon.NewCarbonService(
		carbonRepository,
		contentStore,
		ocrClient,
		itemExtractor,
		scoringClient,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	carbonHandler := handlers.NewCarbonHandler(carbonService, validator)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		CarbonHandler: carbonHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
