package routes

import (
	"github.com/Goutham-IITJ/Project-Raseed/internal/api/handlers"
	"github.com/Goutham-IITJ/Project-Raseed/internal/middleware"
	"github.com/Goutham-IITJ/Project-Raseed/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	ReceiptHandler handlers.ReceiptHandler
	ChatHandler    handlers.ChatHandler
	WalletHandler  handlers.WalletHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Receipts()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Receipts() {
	receipts := c.App.Group("/api/v1/receipts", c.Middleware.AuthMiddleware(c.JWTService))

	receipts.Post("", c.ReceiptHandler.UploadReceipt)
	receipts.Post("/manual", c.ReceiptHandler.ManualEntry)
	receipts.Get("", c.ReceiptHandler.ListReceipts)
	receipts.Get("/report/categories", c.ReceiptHandler.CategoryReport)
	receipts.Get("/:filename", c.ReceiptHandler.GetReceipt)
	receipts.Delete("/:filename", c.ReceiptHandler.DeleteReceipt)

	// Special operations
	receipts.Post("/wallet-link", c.WalletHandler.CreatePassLink)

	chat := c.App.Group("/api/v1/chat", c.Middleware.AuthMiddleware(c.JWTService))
	chat.Post("", c.ChatHandler.Ask)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
}
