package routes

import (
	"Receipt-Carbon-Backend/internal/api/handlers"
	"Receipt-Carbon-Backend/internal/middleware"
	"Receipt-Carbon-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	CarbonHandler handlers.CarbonHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Carbon()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Carbon() {
	carbon := c.App.Group("/api/v1/carbon")
	{
		carbon.Post("/upload", c.CarbonHandler.UploadReceipt)
		carbon.Get("/history/:user_id", c.CarbonHandler.GetHistory)
		carbon.Get("/dashboard/:user_id", c.CarbonHandler.GetDashboard)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
