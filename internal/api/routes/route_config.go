package routes

import (
	"food-tracker/internal/api/handlers"
	"food-tracker/internal/metrics"
	"food-tracker/internal/middleware"
	"food-tracker/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                   *fiber.App
	UserHandler           handlers.UserHandler
	FoodHandler           handlers.FoodHandler
	FoodLogHandler        handlers.FoodLogHandler
	AnalyticsHandler      handlers.AnalyticsHandler
	CategoryHandler       handlers.CategoryHandler
	DonationCenterHandler handlers.DonationCenterHandler
	DonationHandler       handlers.DonationHandler
	Middleware            middleware.Middleware
	JWTService            jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.FoodItems()
	c.FoodLogs()
	c.Analytics()
	c.Categories()
	c.DonationCenters()
	c.DonationOffers()
}

func (c *Config) GuestRoute() {
	c.App.Get("/health", handlers.HealthCheck)
	c.App.Get("/metrics", metrics.Handler())
}

func (c *Config) User() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
	}

	user := c.App.Group("/api/v1/users", c.Middleware.AuthMiddleware(c.JWTService))
	{
		user.Get("/me", c.UserHandler.Me)
		user.Put("/me", c.UserHandler.UpdateUser)
		user.Delete("/me", c.UserHandler.DeleteUser)
	}
}

func (c *Config) FoodItems() {
	food := c.App.Group("/api/v1/food", c.Middleware.AuthMiddleware(c.JWTService))

	food.Get("/alerts", c.FoodHandler.GetExpiryAlerts)
	food.Post("/alerts/notify", c.FoodHandler.SendExpiryAlerts)

	food.Post("", c.FoodHandler.AddFoodItem)
	food.Get("", c.FoodHandler.GetFoodItems)
	food.Get("/:id", c.FoodHandler.GetFoodItemDetails)
	food.Put("/:id", c.FoodHandler.UpdateFoodItem)
	food.Delete("/:id", c.FoodHandler.DeleteFoodItem)
	food.Patch("/:id/status", c.FoodHandler.UpdateFoodStatus)
	food.Post("/:id/image", c.FoodHandler.UploadFoodImage)
}

func (c *Config) FoodLogs() {
	logs := c.App.Group("/api/v1/food-logs", c.Middleware.AuthMiddleware(c.JWTService))
	logs.Post("", c.FoodLogHandler.CreateFoodLog)
	logs.Get("", c.FoodLogHandler.GetFoodLogs)
	logs.Get("/:id", c.FoodLogHandler.GetFoodLog)
	logs.Delete("/:id", c.FoodLogHandler.DeleteFoodLog)
}

func (c *Config) Analytics() {
	c.App.Get("/api/v1/analytics", c.Middleware.AuthMiddleware(c.JWTService), c.AnalyticsHandler.GetAnalytics)
}

func (c *Config) Categories() {
	categories := c.App.Group("/api/v1/categories", c.Middleware.AuthMiddleware(c.JWTService))
	categories.Post("", c.CategoryHandler.CreateCategory)
	categories.Get("", c.CategoryHandler.GetCategories)
	categories.Delete("/:id", c.CategoryHandler.DeleteCategory)
}

func (c *Config) DonationCenters() {
	centers := c.App.Group("/api/v1/donation-centers")
	// reads are public
	centers.Get("", c.DonationCenterHandler.GetCenters)
	centers.Get("/:id", c.DonationCenterHandler.GetCenterByID)

	auth := c.Middleware.AuthMiddleware(c.JWTService)
	centers.Post("", auth, c.DonationCenterHandler.CreateCenter)
	centers.Put("/:id", auth, c.DonationCenterHandler.UpdateCenter)
	centers.Delete("/:id", auth, c.DonationCenterHandler.DeleteCenter)
}

func (c *Config) DonationOffers() {
	offers := c.App.Group("/api/v1/donation-offers", c.Middleware.AuthMiddleware(c.JWTService))
	offers.Post("", c.DonationHandler.CreateOffer)
	offers.Get("", c.DonationHandler.GetUserOffers)
	offers.Get("/:id", c.DonationHandler.GetOfferByID)
	offers.Delete("/:id", c.DonationHandler.DeleteOffer)
	offers.Patch("/:id/status", c.DonationHandler.UpdateOfferStatus)
	offers.Get("/:id/qrcode", c.DonationHandler.GetPickupQRCode)
}
