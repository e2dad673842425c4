package config

import (
	"context"
	"os"
	"time"

	"github.com/Goutham-IITJ/Project-Raseed/internal/api/handlers"
	"github.com/Goutham-IITJ/Project-Raseed/internal/api/routes"
	"github.com/Goutham-IITJ/Project-Raseed/internal/middleware"
	"github.com/Goutham-IITJ/Project-Raseed/internal/utils"
	"github.com/Goutham-IITJ/Project-Raseed/internal/utils/storage"
	"github.com/Goutham-IITJ/Project-Raseed/pkg/agent"
	"github.com/Goutham-IITJ/Project-Raseed/pkg/extraction"
	"github.com/Goutham-IITJ/Project-Raseed/pkg/jwt"
	"github.com/Goutham-IITJ/Project-Raseed/pkg/receipt"
	"github.com/Goutham-IITJ/Project-Raseed/pkg/user"
	"github.com/Goutham-IITJ/Project-Raseed/pkg/wallet"
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
		BodyLimit:         20 * 1024 * 1024,
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

	// blob storage: S3 when a bucket is configured, local directory otherwise
	var blobs storage.Provider
	if utils.GetConfig("AWS_S3_BUCKET") != "" {
		blobs, err = storage.NewAwsS3()
		if err != nil {
			return nil, err
		}
	} else {
		blobs = storage.NewLocalStorage(utils.GetConfig("UPLOAD_DIR"))
	}

	ctx := context.Background()
	extractor, err := extraction.NewExtractionService(ctx)
	if err != nil {
		return nil, err
	}
	agentService, err := agent.NewAgentService(ctx, db)
	if err != nil {
		return nil, err
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	receiptRepository := receipt.NewReceiptRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	receiptService := receipt.NewReceiptService(receiptRepository, extractor, blobs)
	walletService := wallet.NewWalletService(receiptService)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	receiptHandler := handlers.NewReceiptHandler(receiptService, validator)
	chatHandler := handlers.NewChatHandler(agentService, validator)
	walletHandler := handlers.NewWalletHandler(walletService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		ReceiptHandler: receiptHandler,
		ChatHandler:    chatHandler,
		WalletHandler:  walletHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
